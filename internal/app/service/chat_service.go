package service

import (
	"context"
	"time"

	"calendar-bot/internal/domain"
)

type ChatService struct {
	Repo  domain.ChatRepo
	Async *AsyncService
	Now   func() time.Time
}

func NewChatService(repo domain.ChatRepo, async *AsyncService) *ChatService {
	return &ChatService{Repo: repo, Async: async, Now: time.Now}
}

// RecordOpen отмечает, что в чате открыли календарь. Запись идёт в фоне
// и теряется, если очередь пула заполнена.
func (s *ChatService) RecordOpen(c domain.Chat) {
	at := s.Now()
	s.Async.Go("record_open", func(ctx context.Context) error {
		return s.Repo.TouchChat(ctx, c, at)
	})
}

func (s *ChatService) KnownChats(ctx context.Context) (int, error) {
	v, err := s.Async.SubmitAsync(ctx, func(ctx context.Context) (any, error) {
		return s.Repo.CountChats(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}
