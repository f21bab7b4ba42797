package keyboards

import (
	"calendar-bot/pkg/calendar"

	"gopkg.in/telebot.v3"
)

const CalendarTitle = "Please choose a date:"

// BuildCalendarKeyboard переводит сетку календаря в inline-клавиатуру.
// Токен кладётся в callback_data как есть, без префикса "\f unique|",
// поэтому нажатия приходят в общий обработчик OnCallback.
func BuildCalendarKeyboard(g calendar.Grid) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(g.Days)+2)
	for _, cells := range g.Rows() {
		row := make(telebot.Row, 0, len(cells))
		for _, c := range cells {
			row = append(row, telebot.Btn{Text: c.Label, Data: c.Token()})
		}
		rows = append(rows, row)
	}
	markup.Inline(rows...)
	return markup
}

// CalendarFor строит клавиатуру за месяц
func CalendarFor(ym calendar.YearMonth) (string, *telebot.ReplyMarkup, error) {
	g, err := calendar.BuildMonth(ym)
	if err != nil {
		return "", nil, err
	}
	return CalendarTitle, BuildCalendarKeyboard(g), nil
}
