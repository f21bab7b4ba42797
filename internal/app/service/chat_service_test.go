package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"calendar-bot/internal/domain"
	"calendar-bot/pkg/workerpool"

	"github.com/rs/zerolog"
)

type memChatRepo struct {
	mu    sync.Mutex
	chats map[int64]domain.Chat
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{chats: make(map[int64]domain.Chat)}
}

func (r *memChatRepo) TouchChat(_ context.Context, c domain.Chat, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.chats[c.ID]
	if !ok {
		c.FirstSeen = at
	} else {
		c.FirstSeen = old.FirstSeen
	}
	c.Opens = old.Opens + 1
	c.LastSeen = at
	r.chats[c.ID] = c
	return nil
}

func (r *memChatRepo) GetChat(_ context.Context, id int64) (domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	if !ok {
		return domain.Chat{}, domain.ErrChatNotFound
	}
	return c, nil
}

func (r *memChatRepo) CountChats(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chats), nil
}

func TestChatServiceRecordOpen(t *testing.T) {
	t.Parallel()
	pool := workerpool.NewWorkerPool(2, 8)
	repo := newMemChatRepo()
	svc := NewChatService(repo, NewAsyncService(pool, zerolog.Nop()))
	fixed := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }

	svc.RecordOpen(domain.Chat{ID: 1})
	svc.RecordOpen(domain.Chat{ID: 1})
	svc.RecordOpen(domain.Chat{ID: 2})
	pool.Close()

	c, err := repo.GetChat(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if c.Opens != 2 || !c.LastSeen.Equal(fixed) {
		t.Fatalf("chat = %+v, want 2 opens at %v", c, fixed)
	}
}

func TestChatServiceKnownChats(t *testing.T) {
	t.Parallel()
	pool := workerpool.NewWorkerPool(1, 1)
	defer pool.Close()
	repo := newMemChatRepo()
	_ = repo.TouchChat(context.Background(), domain.Chat{ID: 5}, time.Now())
	svc := NewChatService(repo, NewAsyncService(pool, zerolog.Nop()))

	n, err := svc.KnownChats(context.Background())
	if err != nil {
		t.Fatalf("KnownChats: %v", err)
	}
	if n != 1 {
		t.Fatalf("KnownChats = %d, want 1", n)
	}
}
