package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Формат callback-данных:
//
//	IGNORE              — неактивная кнопка
//	NAV_<год>_<месяц>   — переход к месяцу
//	DAY_<год>_<месяц>_<день> — выбор даты
const (
	TagIgnore   = "IGNORE"
	TagNavigate = "NAV"
	TagDay      = "DAY"

	sep = "_"
)

var ErrMalformedToken = errors.New("calendar: malformed callback token")

// Action — закрытый набор действий: Navigate, SelectDay, Inert.
type Action interface {
	Token() string
	action()
}

// Navigate — перерисовать календарь для другого месяца
type Navigate struct {
	Target YearMonth
}

// SelectDay — пользователь выбрал дату
type SelectDay struct {
	Year  int
	Month time.Month
	Day   int
}

// Inert — нажатие на неактивную кнопку, ничего не меняет
type Inert struct{}

func (Navigate) action()  {}
func (SelectDay) action() {}
func (Inert) action()     {}

func (a Navigate) Token() string  { return EncodeNavigate(a.Target) }
func (a SelectDay) Token() string { return EncodeSelectDay(a.Year, int(a.Month), a.Day) }
func (Inert) Token() string       { return EncodeInert() }

// Date возвращает выбранную дату в UTC
func (a SelectDay) Date() time.Time {
	return time.Date(a.Year, a.Month, a.Day, 0, 0, 0, 0, time.UTC)
}

func EncodeNavigate(target YearMonth) string {
	return TagNavigate + sep + strconv.Itoa(target.Year) + sep + strconv.Itoa(int(target.Month))
}

func EncodeSelectDay(year, month, day int) string {
	return TagDay + sep + strconv.Itoa(year) + sep + strconv.Itoa(month) + sep + strconv.Itoa(day)
}

func EncodeInert() string {
	return TagIgnore
}

// Decode разбирает callback-данные кнопки
func Decode(token string) (Action, error) {
	if token == TagIgnore {
		return Inert{}, nil
	}
	parts := strings.Split(token, sep)
	switch parts[0] {
	case TagNavigate:
		nums, err := parseFields(token, parts[1:], 2)
		if err != nil {
			return nil, err
		}
		ym := YearMonth{Year: nums[0], Month: time.Month(nums[1])}
		if err := ym.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedToken, token, err)
		}
		return Navigate{Target: ym}, nil
	case TagDay:
		nums, err := parseFields(token, parts[1:], 3)
		if err != nil {
			return nil, err
		}
		ym := YearMonth{Year: nums[0], Month: time.Month(nums[1])}
		if err := ym.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedToken, token, err)
		}
		if nums[2] < 1 || nums[2] > DaysInMonth(ym.Year, ym.Month) {
			return nil, fmt.Errorf("%w: %q: no day %d in %s", ErrMalformedToken, token, nums[2], ym)
		}
		return SelectDay{Year: ym.Year, Month: ym.Month, Day: nums[2]}, nil
	}
	return nil, fmt.Errorf("%w: unknown tag in %q", ErrMalformedToken, token)
}

// parseFields принимает только канонические десятичные числа,
// чтобы повторное кодирование давало ту же строку
func parseFields(token string, fields []string, want int) ([]int, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("%w: %q: want %d fields, got %d", ErrMalformedToken, token, want, len(fields))
	}
	nums := make([]int, want)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || strconv.Itoa(n) != f {
			return nil, fmt.Errorf("%w: %q: field %q is not an integer", ErrMalformedToken, token, f)
		}
		nums[i] = n
	}
	return nums, nil
}
