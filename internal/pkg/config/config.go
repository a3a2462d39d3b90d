// Package config loads application configuration from the environment once
// at startup. Invalid optional values fall back to defaults with a warning;
// missing store credentials are a fatal startup error.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Defaults for optional settings.
const (
	DefaultAddr       = ":8080"
	DefaultAPITimeout = 5000 * time.Millisecond
	DefaultRateLimit  = 100
	DefaultRateWindow = 15 * time.Minute
	DefaultBodyLimit  = 1 << 20 // 1 MiB
)

// Config is the application configuration, read once at process start.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string

	// APITimeout bounds every service operation (API_TIMEOUT, milliseconds).
	APITimeout time.Duration

	// SupabaseURL and SupabaseAnonKey identify the hosted backend project;
	// the identity endpoint lives under SupabaseURL.
	SupabaseURL     string
	SupabaseAnonKey string

	// DatabaseURL is the Postgres connection string of the project database.
	DatabaseURL string

	// AuthProvider selects the identity provider: "gotrue" (remote lookup)
	// or "jwt" (local verification with SupabaseJWTSecret).
	AuthProvider      string
	SupabaseJWTSecret string

	// RateLimit requests per RateWindow are allowed per client IP.
	RateLimit  int
	RateWindow time.Duration

	// BodyLimit is the maximum accepted request body size in bytes.
	BodyLimit int64

	// ChatProvider selects the /aichat backend: "openai" or "anthropic".
	ChatProvider string
	ChatModel    string
	ChatBaseURL  string
	ChatAPIKey   string
}

// Load reads the configuration from the environment. It returns an error
// when the store credentials (SUPABASE_URL, SUPABASE_ANON_KEY, DATABASE_URL)
// are absent; everything else falls back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:              EnvString("ADDR", DefaultAddr),
		APITimeout:        EnvMillis("API_TIMEOUT", DefaultAPITimeout),
		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:   os.Getenv("SUPABASE_ANON_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AuthProvider:      EnvString("AUTH_PROVIDER", "gotrue"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),
		RateLimit:         EnvInt("RATE_LIMIT", DefaultRateLimit),
		RateWindow:        EnvDuration("RATE_WINDOW", DefaultRateWindow),
		BodyLimit:         int64(EnvInt("BODY_LIMIT", DefaultBodyLimit)),
		ChatProvider:      EnvString("CHAT_PROVIDER", "openai"),
		ChatModel:         EnvString("CHAT_MODEL", "gpt-3.5-turbo"),
		ChatBaseURL:       os.Getenv("CHAT_BASE_URL"),
		ChatAPIKey:        os.Getenv("CHAT_API_KEY"),
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("supabase credentials are not provided in environment variables")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not provided in environment variables")
	}
	if cfg.AuthProvider == "jwt" && cfg.SupabaseJWTSecret == "" {
		return nil, fmt.Errorf("SUPABASE_JWT_SECRET is required when AUTH_PROVIDER=jwt")
	}

	return cfg, nil
}

// EnvString returns the environment value for key, or def when unset.
func EnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvInt parses an integer environment value, falling back to def with a
// warning on parse failure.
func EnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, falling back to default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Int("default", def))
		return def
	}
	return parsed
}

// EnvMillis parses a millisecond count, falling back to def when the value
// is unset, unparsable, or not positive.
func EnvMillis(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		slog.Warn("invalid millisecond value in environment, falling back to default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Duration("default", def))
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// EnvDuration parses a Go duration string ("15m", "1h"), falling back to
// def when the value is unset, unparsable, or not positive.
func EnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, falling back to default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Duration("default", def))
		return def
	}
	return d
}
