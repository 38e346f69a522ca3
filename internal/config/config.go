package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const DefaultConfigFileName = "takt.toml"

// Config keeps runtime settings for the app. Values come from an optional
// TOML file, with environment variables taking precedence.
type Config struct {
	TelegramToken  string        `toml:"telegram_token"`
	DatabaseURL    string        `toml:"database_url"`
	ReportTime     string        `toml:"report_time"` // HH:MM; empty disables the daily report
	ReportInterval time.Duration `toml:"-"`
	LogLevel       string        `toml:"log_level"`
}

// Load reads the optional config file, then environment overrides.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL: "takt.db",
		ReportTime:  "08:00",
		LogLevel:    "info",
	}

	path := strings.TrimSpace(os.Getenv("TAKT_CONFIG"))
	if path == "" {
		path = DefaultConfigFileName
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if v := strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")); v != "" {
		cfg.TelegramToken = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("REPORT_TIME")); v != "" {
		cfg.ReportTime = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	cfg.ReportInterval = parseInterval(strings.TrimSpace(os.Getenv("REPORT_INTERVAL_HOURS")))

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
