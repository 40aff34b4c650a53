// Package config handles application configuration and environment loading.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GraphConfig holds connection settings for the upstream directory service.
type GraphConfig struct {
	BaseURL string // upstream REST base URL (e.g. https://graph.example.com/v1.0)
	Token   string // static bearer token; certificate auth is terminated upstream

	// Retry caps for the paged list calls. The provider controls backoff;
	// we only bound the attempt count.
	UserMaxRetries  int // default 5
	GroupMaxRetries int // default 7
}

// Config holds the configuration for the tenant directory API.
type Config struct {
	ListenAddr string // HTTP listen address (default ":8080")
	DBPath     string // path to the SQLite cache file (default "tenant.sqlite")
	LogLevel   string // log level: debug, info, warn, error (default "info")

	// APIKey gates mutating endpoints. Empty disables the gate entirely —
	// an explicit operational choice, not an omission.
	APIKey string

	// SyncInterval is the fixed interval between cache sync passes.
	SyncInterval time.Duration

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	Graph GraphConfig
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AuthEnabled reports whether the API-key gate is active.
func (c *Config) AuthEnabled() bool {
	return c.APIKey != ""
}

// LoadFromEnv loads configuration from environment variables. Defaults are
// applied for everything except the upstream base URL, which is required.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr: envOr("LISTEN_ADDR", ":8080"),
		DBPath:     envOr("DB_PATH", "tenant.sqlite"),
		LogLevel:   envOr("LOG_LEVEL", "info"),
		APIKey:     os.Getenv("API_KEY"),
		Graph: GraphConfig{
			BaseURL:         os.Getenv("GRAPH_BASE_URL"),
			Token:           os.Getenv("GRAPH_TOKEN"),
			UserMaxRetries:  5,
			GroupMaxRetries: 7,
		},
	}

	var err error
	if cfg.SyncInterval, err = envDuration("SYNC_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", 200); err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = envList("CORS_ALLOWED_ORIGINS", []string{"*"})

	if cfg.Graph.BaseURL == "" {
		return nil, fmt.Errorf("GRAPH_BASE_URL is required")
	}
	cfg.Graph.BaseURL = strings.TrimRight(cfg.Graph.BaseURL, "/")
	if cfg.SyncInterval < time.Second {
		return nil, fmt.Errorf("SYNC_INTERVAL must be at least 1s, got %s", cfg.SyncInterval)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q: %w", key, v, err)
	}
	return f, nil
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
