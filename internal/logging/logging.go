// Package logging provides structured logging infrastructure for sedinit.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sedstack/sedinit/internal/config"
)

// NewFromConfig creates a new slog.Logger based on configuration.
// Records go to w, and additionally to the configured log file if any.
func NewFromConfig(cfg *config.Config, baseDir string, w io.Writer) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(cfg.Logging.Level)
	handler := newHandler(cfg.Logging.Format, w, level)

	var closer io.Closer
	if cfg.Logging.File != "" {
		logPath := cfg.LogFile(baseDir)

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, err
		}

		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		closer = file

		handler = newHandler(cfg.Logging.Format, io.MultiWriter(w, file), level)
	}

	return slog.New(handler), closer, nil
}

// NewForTest creates a silent logger for tests.
func NewForTest() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// ParseLevel converts config log level to slog.Level.
func ParseLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format config.LogFormat, w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch format {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// WithStage returns a logger tagged with the setup stage.
func WithStage(logger *slog.Logger, stage string) *slog.Logger {
	return logger.With("stage", stage)
}

// WithInput returns a logger tagged with the input file being set up.
func WithInput(logger *slog.Logger, path string) *slog.Logger {
	return logger.With("input", path)
}
