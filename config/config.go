package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DBPath        string
	LogLevel      string
	LogFormat     string
	Workers       int
	QueueSize     int
	PollTimeout   time.Duration
	Location      *time.Location
	TapRate       float64
	TapBurst      int
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, ErrNoToken{}
	}
	cfg := &Config{
		TelegramToken: token,
		DBPath:        envOr("DB_PATH", "calendar-bot.db"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "console"),
	}

	var err error
	if cfg.Workers, err = envInt("WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = envInt("QUEUE_SIZE", 32); err != nil {
		return nil, err
	}
	if cfg.TapBurst, err = envInt("TAP_BURST", 6); err != nil {
		return nil, err
	}
	if cfg.PollTimeout, err = time.ParseDuration(envOr("POLL_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("POLL_TIMEOUT: %w", err)
	}
	if cfg.TapRate, err = strconv.ParseFloat(envOr("TAP_RATE", "3"), 64); err != nil {
		return nil, fmt.Errorf("TAP_RATE: %w", err)
	}
	if cfg.Location, err = time.LoadLocation(envOr("CALENDAR_TZ", "Local")); err != nil {
		return nil, fmt.Errorf("CALENDAR_TZ: %w", err)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN is not set"
}
