// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	FormatText = "text"
	FormatJSON = "json"
)

// Config holds everything the binary needs to wire itself.
type Config struct {
	DataDir         string
	FeedbackBackend string
	FeedbackPath    string
	DBPath          string
	// CatalogPath is an optional YAML price list overlaid on the built-in one.
	CatalogPath    string
	HTTPAddr       string
	LogLevel       slog.Level
	LogFormat      string
	LogUseCases    bool
	QuoteCacheSize int
}

// DefaultConfig returns the configuration rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:         dataDir,
		FeedbackBackend: BackendFile,
		FeedbackPath:    filepath.Join(dataDir, "feedback_state.json"),
		DBPath:          filepath.Join(dataDir, "renovo.db"),
		HTTPAddr:        ":8080",
		LogLevel:        slog.LevelWarn,
		LogFormat:       FormatText,
		QuoteCacheSize:  256,
	}
}

// Load reads a .env file from the working directory when present, then
// applies RENOVO_* environment overrides to the defaults. Invalid values are
// ignored.
func Load() (Config, error) {
	_ = godotenv.Load()

	dataDir := os.Getenv("RENOVO_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".renovo")
	}
	cfg := DefaultConfig(dataDir)

	if v := strings.ToLower(os.Getenv("RENOVO_FEEDBACK_BACKEND")); v == BackendFile || v == BackendSQLite {
		cfg.FeedbackBackend = v
	}
	if v := os.Getenv("RENOVO_FEEDBACK_PATH"); v != "" {
		cfg.FeedbackPath = v
	}
	if v := os.Getenv("RENOVO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("RENOVO_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("RENOVO_HTTP_ADDR"); v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("RENOVO_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = lvl
		}
	}
	if v := strings.ToLower(os.Getenv("RENOVO_LOG_FORMAT")); v == FormatText || v == FormatJSON {
		cfg.LogFormat = v
	}
	if v := os.Getenv("RENOVO_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("RENOVO_QUOTE_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.QuoteCacheSize = n
		}
	}

	return cfg, nil
}

// NewLogger builds the process logger writing to w in the configured format.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// EnsureDirs creates the directories holding the state files.
func (c Config) EnsureDirs() error {
	for _, p := range []string{c.DataDir, filepath.Dir(c.FeedbackPath), filepath.Dir(c.DBPath)} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", p, err)
		}
	}
	return nil
}
