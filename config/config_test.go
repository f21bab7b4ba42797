package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	for _, k := range []string{"DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "WORKERS", "QUEUE_SIZE", "POLL_TIMEOUT", "TAP_RATE", "TAP_BURST"} {
		t.Setenv(k, "")
	}
	t.Setenv("CALENDAR_TZ", "UTC")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.DBPath != "calendar-bot.db" || cfg.Workers != 4 || cfg.QueueSize != 32 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PollTimeout != 10*time.Second {
		t.Fatalf("PollTimeout = %v, want 10s", cfg.PollTimeout)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("Location = %v, want UTC", cfg.Location)
	}
}

func TestLoadConfigNoToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	_, err := LoadConfig()
	if !errors.As(err, &ErrNoToken{}) {
		t.Fatalf("LoadConfig error = %v, want ErrNoToken", err)
	}
}

func TestLoadConfigBadNumber(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("WORKERS", "many")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for WORKERS=many")
	}
}
