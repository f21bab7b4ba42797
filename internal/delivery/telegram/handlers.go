package telegram

import (
	"fmt"
	"strings"
	"time"

	"calendar-bot/internal/app/service"
	"calendar-bot/internal/delivery/telegram/keyboards"
	"calendar-bot/internal/delivery/telegram/middleware"
	"calendar-bot/internal/domain"
	"calendar-bot/pkg/calendar"

	"github.com/rs/zerolog"
	"gopkg.in/telebot.v3"
)

const (
	CalendarCommand = "/calendar"

	HintText            = "Send /calendar to see the calendar."
	UnknownActionNotice = "Sorry, this button is no longer valid."
)

type Handler struct {
	Bot      *telebot.Bot
	Chats    *service.ChatService
	Throttle *middleware.Throttle
	Log      zerolog.Logger
	// Now задаёт текущее время в часовом поясе бота
	Now func() time.Time
}

func (h *Handler) Register() {
	h.Bot.Handle(CalendarCommand, h.HandleCalendar)
	h.Bot.Handle("/start", h.HandleText)
	h.Bot.Handle(telebot.OnText, h.HandleText)

	var mw []telebot.MiddlewareFunc
	if h.Throttle != nil {
		mw = append(mw, h.Throttle.Middleware())
	}
	h.Bot.Handle(telebot.OnCallback, h.HandleCallback, mw...)
}

// IsCalendarCommand распознаёт "/calendar" без учёта регистра и с суффиксом @botname
func IsCalendarCommand(text string) bool {
	cmd := strings.ToLower(strings.TrimSpace(text))
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	return cmd == CalendarCommand
}

func (h *Handler) HandleText(c telebot.Context) error {
	if IsCalendarCommand(c.Text()) {
		return h.HandleCalendar(c)
	}
	return c.Send(HintText)
}

// HandleCalendar отправляет календарь на текущий месяц
func (h *Handler) HandleCalendar(c telebot.Context) error {
	ym := calendar.YearMonthOf(h.now())
	title, markup, err := keyboards.CalendarFor(ym)
	if err != nil {
		return err
	}
	h.recordOpen(c)
	return c.Send(title, markup)
}

// HandleCallback обрабатывает нажатие кнопки календаря
func (h *Handler) HandleCallback(c telebot.Context) error {
	token := c.Data()
	action, err := calendar.Decode(token)
	if err != nil {
		h.Log.Warn().Err(err).Int64("chat_id", chatID(c)).Str("token", token).Msg("malformed callback")
		return c.Respond(&telebot.CallbackResponse{Text: UnknownActionNotice})
	}

	switch a := action.(type) {
	case calendar.Inert:
		return c.Respond()
	case calendar.SelectDay:
		h.Log.Debug().Int64("chat_id", chatID(c)).Time("date", a.Date()).Msg("date selected")
		return c.Respond(&telebot.CallbackResponse{Text: SelectedText(a)})
	case calendar.Navigate:
		// Decode уже проверил месяц, ошибки построения здесь нет
		title, markup, err := keyboards.CalendarFor(a.Target)
		if err != nil {
			return err
		}
		if err := middleware.EditInPlace(c, title, markup); err != nil {
			h.respondQuietly(c)
			return fmt.Errorf("navigate to %s: %w", a.Target, err)
		}
		return c.Respond()
	default:
		return fmt.Errorf("unhandled calendar action %T", action)
	}
}

func SelectedText(a calendar.SelectDay) string {
	return "You chose: " + a.Date().Format("Mon, 02 Jan 2006")
}

func (h *Handler) recordOpen(c telebot.Context) {
	if h.Chats == nil || c.Chat() == nil {
		return
	}
	chat := domain.Chat{ID: c.Chat().ID}
	if u := c.Sender(); u != nil {
		chat.Username = u.Username
		chat.FirstName = u.FirstName
	}
	h.Chats.RecordOpen(chat)
}

// respondQuietly снимает "часики" с кнопки, когда основная ошибка уже возвращается
func (h *Handler) respondQuietly(c telebot.Context) {
	if err := c.Respond(); err != nil {
		h.Log.Warn().Err(err).Int64("chat_id", chatID(c)).Msg("answer callback")
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func chatID(c telebot.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}
