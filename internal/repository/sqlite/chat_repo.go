package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"calendar-bot/internal/domain"
)

const timeLayout = time.RFC3339

type SqliteChatRepo struct {
	db *sql.DB
}

func NewSqliteChatRepo(db *sql.DB) *SqliteChatRepo {
	return &SqliteChatRepo{db: db}
}

// TouchChat создаёт запись о чате или увеличивает счётчик открытий
func (r *SqliteChatRepo) TouchChat(ctx context.Context, c domain.Chat, at time.Time) error {
	ts := at.UTC().Format(timeLayout)
	_, err := r.db.ExecContext(ctx, `
INSERT INTO chats (id, username, first_name, opens, first_seen, last_seen)
VALUES (?, ?, ?, 1, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    username = excluded.username,
    first_name = excluded.first_name,
    opens = chats.opens + 1,
    last_seen = excluded.last_seen`,
		c.ID, c.Username, c.FirstName, ts, ts,
	)
	return err
}

func (r *SqliteChatRepo) GetChat(ctx context.Context, id int64) (domain.Chat, error) {
	var (
		c               domain.Chat
		first, lastSeen string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, first_name, opens, first_seen, last_seen FROM chats WHERE id = ?`, id,
	).Scan(&c.ID, &c.Username, &c.FirstName, &c.Opens, &first, &lastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Chat{}, domain.ErrChatNotFound
	}
	if err != nil {
		return domain.Chat{}, err
	}
	if c.FirstSeen, err = time.Parse(timeLayout, first); err != nil {
		return domain.Chat{}, err
	}
	if c.LastSeen, err = time.Parse(timeLayout, lastSeen); err != nil {
		return domain.Chat{}, err
	}
	return c, nil
}

func (r *SqliteChatRepo) CountChats(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chats`).Scan(&n)
	return n, err
}
