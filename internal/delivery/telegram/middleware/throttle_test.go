package middleware

import (
	"testing"
	"time"

	"gopkg.in/telebot.v3"
)

func TestThrottlePerChat(t *testing.T) {
	t.Parallel()
	th := NewThrottle(1, 2)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	th.now = func() time.Time { return now }

	if !th.Allow(1) || !th.Allow(1) {
		t.Fatal("burst of 2 should be allowed")
	}
	if th.Allow(1) {
		t.Fatal("third tap within the same instant should be throttled")
	}
	if !th.Allow(2) {
		t.Fatal("other chat must not be affected")
	}

	now = now.Add(time.Second)
	if !th.Allow(1) {
		t.Fatal("tap after refill should be allowed")
	}
}

func TestThrottleForgetsIdleChats(t *testing.T) {
	t.Parallel()
	th := NewThrottle(1, 1)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	th.now = func() time.Time { return now }

	th.Allow(1)
	now = now.Add(th.ttl + time.Second)
	th.Allow(2)
	if _, ok := th.limiters[1]; ok {
		t.Fatal("idle chat limiter was not collected")
	}
}

type tapContext struct {
	telebot.Context
	chat      *telebot.Chat
	responses []*telebot.CallbackResponse
}

func (c *tapContext) Chat() *telebot.Chat { return c.chat }

func (c *tapContext) Respond(resp ...*telebot.CallbackResponse) error {
	c.responses = append(c.responses, resp...)
	return nil
}

func TestThrottleMiddlewareSkipsHandler(t *testing.T) {
	t.Parallel()
	th := NewThrottle(1, 2)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	th.now = func() time.Time { return now }

	var calls int
	handler := th.Middleware()(func(telebot.Context) error {
		calls++
		return nil
	})

	c := &tapContext{chat: &telebot.Chat{ID: 42}}
	for i := 0; i < 3; i++ {
		if err := handler(c); err != nil {
			t.Fatalf("tap %d error: %v", i, err)
		}
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
	if len(c.responses) != 1 || c.responses[0].Text != ThrottledNotice {
		t.Fatalf("responses = %+v, want one %q", c.responses, ThrottledNotice)
	}

	other := &tapContext{chat: &telebot.Chat{ID: 43}}
	if err := handler(other); err != nil {
		t.Fatalf("other chat error: %v", err)
	}
	if calls != 3 || len(other.responses) != 0 {
		t.Fatalf("other chat throttled: calls = %d, responses = %+v", calls, other.responses)
	}
}
