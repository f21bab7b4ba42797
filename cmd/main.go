package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calendar-bot/config"
	"calendar-bot/internal/app/service"
	"calendar-bot/internal/delivery/telegram"
	"calendar-bot/internal/delivery/telegram/middleware"
	"calendar-bot/internal/logging"
	"calendar-bot/internal/repository/sqlite"
	"calendar-bot/pkg/workerpool"

	"github.com/rs/zerolog"
	"gopkg.in/telebot.v3"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot.Fatal().Err(err).Msg("init logger")
	}
	log.Info().Msg("starting calendar bot")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	pool := workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	defer pool.Shutdown(5 * time.Second)

	chats := service.NewChatService(
		sqlite.NewSqliteChatRepo(db),
		service.NewAsyncService(pool, log),
	)
	if n, err := chats.KnownChats(ctx); err != nil {
		log.Warn().Err(err).Msg("count known chats")
	} else {
		log.Info().Int("chats", n).Msg("chat registry loaded")
	}

	tgLog := log.With().Str("component", "telegram").Logger()
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c telebot.Context) {
			ev := tgLog.Error().Err(err)
			if c != nil && c.Chat() != nil {
				ev = ev.Int64("chat_id", c.Chat().ID)
			}
			ev.Msg("handler failed")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Fatal().Err(err).Msg("create bot")
	}

	loc := cfg.Location
	handler := &telegram.Handler{
		Bot:      bot,
		Chats:    chats,
		Throttle: middleware.NewThrottle(cfg.TapRate, cfg.TapBurst),
		Log:      tgLog,
		Now:      func() time.Time { return time.Now().In(loc) },
	}
	handler.Register()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		bot.Stop()
	}()

	log.Info().Str("bot", bot.Me.Username).Msg("bot started")
	bot.Start()
}
