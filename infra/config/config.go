package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application-level configuration, parsed from the
// environment.
type Config struct {
	// BaseURL is the blogmates API root, e.g. "https://blogmates.example/api".
	BaseURL string `env:"BLOGMATES_BASE_URL" envDefault:"http://localhost:8000/api"`

	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration `env:"BLOGMATES_TIMEOUT" envDefault:"5s"`

	// PageSize is the default feed/comments page size.
	PageSize int `env:"BLOGMATES_PAGE_SIZE" envDefault:"10"`

	// LogPath is the JSON log file. Stdout belongs to the TUI.
	LogPath string `env:"BLOGMATES_LOG"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `env:"BLOGMATES_LOG_LEVEL" envDefault:"info"`

	// UIStatePath persists view preferences between runs.
	UIStatePath string `env:"BLOGMATES_UI_STATE"`
}

// Load parses and validates configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid BLOGMATES_BASE_URL: must be an absolute URL")
	}
	if parsed.Scheme != "https" && parsed.Hostname() != "localhost" && parsed.Hostname() != "127.0.0.1" {
		return Config{}, fmt.Errorf("invalid BLOGMATES_BASE_URL: only https is allowed for remote hosts")
	}
	cfg.BaseURL = strings.TrimRight(parsed.String(), "/")

	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid BLOGMATES_TIMEOUT: must be positive")
	}
	if cfg.PageSize < 1 {
		return Config{}, fmt.Errorf("invalid BLOGMATES_PAGE_SIZE: must be at least 1")
	}

	if cfg.LogPath == "" || cfg.UIStatePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir := filepath.Join(home, ".config", "blogmates")
		if cfg.LogPath == "" {
			cfg.LogPath = filepath.Join(dir, "blogmates.log")
		}
		if cfg.UIStatePath == "" {
			cfg.UIStatePath = filepath.Join(dir, "ui_state.json")
		}
	}

	return cfg, nil
}
