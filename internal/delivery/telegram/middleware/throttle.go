package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

const ThrottledNotice = "Too many taps, slow down."

// Throttle ограничивает частоту нажатий по каждому чату отдельно
type Throttle struct {
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	limiters map[int64]*chatLimiter
	lastGC   time.Time
}

type chatLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewThrottle(perSecond float64, burst int) *Throttle {
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		ttl:      10 * time.Minute,
		now:      time.Now,
		limiters: make(map[int64]*chatLimiter),
	}
}

// Allow сообщает, можно ли обработать ещё одно нажатие в чате
func (t *Throttle) Allow(chatID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if now.Sub(t.lastGC) > t.ttl {
		for id, l := range t.limiters {
			if now.Sub(l.seen) > t.ttl {
				delete(t.limiters, id)
			}
		}
		t.lastGC = now
	}
	l, ok := t.limiters[chatID]
	if !ok {
		l = &chatLimiter{lim: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[chatID] = l
	}
	l.seen = now
	return l.lim.AllowN(now, 1)
}

func (t *Throttle) Middleware() telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			chat := c.Chat()
			if chat == nil || t.Allow(chat.ID) {
				return next(c)
			}
			return c.Respond(&telebot.CallbackResponse{Text: ThrottledNotice})
		}
	}
}
