// Package logging sets up the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config selects level, format and destination.
// Output is "stderr", "stdout", "discard" or "file:/path/to/log".
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// NewConfigFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT.
func NewConfigFromEnv() Config {
	return Config{
		Level:  getEnvWithDefault("LOG_LEVEL", "warn"),
		Format: getEnvWithDefault("LOG_FORMAT", "text"),
		Output: getEnvWithDefault("LOG_OUTPUT", "stderr"),
	}
}

// ToFile reports whether logs go to a file.
func (c Config) ToFile() bool { return strings.HasPrefix(c.Output, "file:") }

var defaultLogger *slog.Logger

// Init builds the logger, installs it as slog's default and returns it
// along with a closer for any opened log file.
func Init(cfg Config) (*slog.Logger, io.Closer, error) {
	w, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var h slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(h.WithAttrs([]slog.Attr{slog.String("service", "tada")}))
	slog.SetDefault(defaultLogger)
	return defaultLogger, closer, nil
}

// GetLogger returns the logger from Init, or slog's default before Init.
func GetLogger() *slog.Logger {
	if defaultLogger == nil {
		return slog.Default()
	}
	return defaultLogger
}

// NewModuleLogger tags log lines with the emitting package and component.
func NewModuleLogger(module, component string) *slog.Logger {
	return GetLogger().With(
		slog.String("module", module),
		slog.String("component", component),
	)
}

// Discard is a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openOutput(out string) (io.Writer, io.Closer, error) {
	switch {
	case out == "" || out == "stderr":
		return os.Stderr, nopCloser{}, nil
	case out == "stdout":
		return os.Stdout, nopCloser{}, nil
	case out == "discard":
		return io.Discard, nopCloser{}, nil
	case strings.HasPrefix(out, "file:"):
		p := strings.TrimPrefix(out, "file:")
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, f, nil
	}
	return nil, nil, fmt.Errorf("unknown log output %q", out)
}

func getEnvWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
