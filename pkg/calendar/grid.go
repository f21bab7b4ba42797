package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	// AmountOfDaysInWeek — ширина строки с днями
	AmountOfDaysInWeek = 7
	// MaxDayRows — максимум строк с днями для любого месяца
	MaxDayRows = 6

	MinYear = 1
	MaxYear = 9999

	prevLabel  = "<"
	nextLabel  = ">"
	blankLabel = " "
)

var ErrInvalidDate = errors.New("calendar: invalid date")

// Порядок совпадает с time.Weekday: 0 = воскресенье
var weekdayNames = [AmountOfDaysInWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// YearMonth — месяц конкретного года
type YearMonth struct {
	Year  int
	Month time.Month
}

func NewYearMonth(year, month int) (YearMonth, error) {
	ym := YearMonth{Year: year, Month: time.Month(month)}
	if err := ym.Validate(); err != nil {
		return YearMonth{}, err
	}
	return ym, nil
}

// YearMonthOf возвращает месяц, в который попадает t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) Validate() error {
	if ym.Month < time.January || ym.Month > time.December {
		return fmt.Errorf("%w: month %d out of range 1..12", ErrInvalidDate, int(ym.Month))
	}
	if ym.Year < MinYear || ym.Year > MaxYear {
		return fmt.Errorf("%w: year %d out of range %d..%d", ErrInvalidDate, ym.Year, MinYear, MaxYear)
	}
	return nil
}

func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Title — подпись месяца в заголовке, например "March 2024"
func (ym YearMonth) Title() string {
	return ym.Month.String() + " " + strconv.Itoa(ym.Year)
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Cell — одна кнопка календаря. Action == nil означает неактивную кнопку.
type Cell struct {
	Label  string
	Action Action
}

// Token возвращает callback-данные кнопки
func (c Cell) Token() string {
	if c.Action == nil {
		return EncodeInert()
	}
	return c.Action.Token()
}

func (c Cell) IsInert() bool {
	if c.Action == nil {
		return true
	}
	_, ok := c.Action.(Inert)
	return ok
}

func inertCell(label string) Cell {
	return Cell{Label: label}
}

// На границе диапазона лет кнопка навигации скрывается
func navCell(label string, target YearMonth) Cell {
	if target.Validate() != nil {
		return inertCell(blankLabel)
	}
	return Cell{Label: label, Action: Navigate{Target: target}}
}

// Grid — полная клавиатура месяца: заголовок, дни недели и строки с днями
type Grid struct {
	Month    YearMonth
	Header   [3]Cell
	Weekdays [AmountOfDaysInWeek]Cell
	Days     [][AmountOfDaysInWeek]Cell
}

// Rows раскладывает сетку в упорядоченный список строк
func (g Grid) Rows() [][]Cell {
	rows := make([][]Cell, 0, 2+len(g.Days))
	rows = append(rows, g.Header[:])
	rows = append(rows, g.Weekdays[:])
	for i := range g.Days {
		rows = append(rows, g.Days[i][:])
	}
	return rows
}

// DayCells возвращает только кнопки выбора дня в порядке возрастания
func (g Grid) DayCells() []Cell {
	var cells []Cell
	for _, row := range g.Days {
		for _, c := range row {
			if _, ok := c.Action.(SelectDay); ok {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday — индекс дня недели первого числа (0 = воскресенье)
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// BuildGrid строит календарь за указанный месяц
func BuildGrid(year, month int) (Grid, error) {
	ym, err := NewYearMonth(year, month)
	if err != nil {
		return Grid{}, err
	}
	return BuildMonth(ym)
}

func BuildMonth(ym YearMonth) (Grid, error) {
	if err := ym.Validate(); err != nil {
		return Grid{}, err
	}
	g := Grid{Month: ym}

	g.Header = [3]Cell{
		navCell(prevLabel, ym.Prev()),
		inertCell(ym.Title()),
		navCell(nextLabel, ym.Next()),
	}
	for i, name := range weekdayNames {
		g.Weekdays[i] = inertCell(name)
	}

	days := DaysInMonth(ym.Year, ym.Month)
	start := FirstWeekday(ym.Year, ym.Month)
	day := 1
	for week := 0; week < MaxDayRows && day <= days; week++ {
		var row [AmountOfDaysInWeek]Cell
		for col := 0; col < AmountOfDaysInWeek; col++ {
			if (week == 0 && col < start) || day > days {
				row[col] = inertCell(blankLabel)
				continue
			}
			row[col] = Cell{
				Label:  strconv.Itoa(day),
				Action: SelectDay{Year: ym.Year, Month: ym.Month, Day: day},
			}
			day++
		}
		g.Days = append(g.Days, row)
	}
	return g, nil
}
