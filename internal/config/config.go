package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Dashboard sources.
const (
	SourceSeed   = "seed"
	SourceStore  = "store"
	SourceRemote = "remote"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	HTTPPort         string
	DatabaseURL      string
	APIBaseURL       string
	DashboardSource  string
	RemoteTimeout    time.Duration
	RemoteRetryMax   int
	RemoteRetryDelay time.Duration
	SnapshotInterval time.Duration
	AdminAPIKey      string
	LogLevel         slog.Level
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		HTTPPort:         envOrDefault("HTTP_PORT", "8000"),
		DatabaseURL:      envOrDefault("DATABASE_URL", ""),
		APIBaseURL:       envOrDefault("API_BASE_URL", "https://investment-platform-ny5x.onrender.com"),
		DashboardSource:  envOrDefaultChoice("DASHBOARD_SOURCE", SourceSeed, SourceSeed, SourceStore, SourceRemote),
		RemoteTimeout:    envOrDefaultDuration("REMOTE_TIMEOUT", 10*time.Second),
		RemoteRetryMax:   envOrDefaultInt("REMOTE_RETRY_MAX", 3),
		RemoteRetryDelay: envOrDefaultDuration("REMOTE_RETRY_DELAY", time.Second),
		SnapshotInterval: envOrDefaultDuration("SNAPSHOT_INTERVAL", 24*time.Hour),
		AdminAPIKey:      envOrDefault("ADMIN_API_KEY", ""),
		LogLevel:         envOrDefaultLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultChoice(key, defaultVal string, allowed ...string) string {
	v := strings.ToLower(envOrDefault(key, defaultVal))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	slog.Warn("invalid env var choice, using default", "key", key, "value", v, "default", defaultVal)
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultLevel(key string, defaultVal slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return level
	}
	return defaultVal
}
