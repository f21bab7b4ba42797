package middleware

import (
	"strings"

	"gopkg.in/telebot.v3"
)

// EditInPlace заменяет текст и клавиатуру сообщения, к которому привязан callback.
// Повторное нажатие на тот же месяц даёт "message is not modified" — это не ошибка.
func EditInPlace(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	if err := c.Edit(text, markup); err != nil {
		if strings.Contains(err.Error(), "not modified") {
			return nil
		}
		return err
	}
	return nil
}
