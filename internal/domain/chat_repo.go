package domain

import (
	"context"
	"errors"
	"time"
)

var ErrChatNotFound = errors.New("chat not found")

// Chat — чат, в котором хотя бы раз открывали календарь
type Chat struct {
	ID        int64
	Username  string
	FirstName string
	Opens     int
	FirstSeen time.Time
	LastSeen  time.Time
}

type ChatRepo interface {
	TouchChat(ctx context.Context, c Chat, at time.Time) error
	GetChat(ctx context.Context, id int64) (Chat, error)
	CountChats(ctx context.Context) (int, error)
}
