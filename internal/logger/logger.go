package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"daidelog/config"
)

// Default is the process-wide logger. It discards records until Init runs.
var Default = slog.New(slog.NewTextHandler(io.Discard, nil))

// New builds a logger writing to w with the configured level and format.
func New(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	var opts = &slog.HandlerOptions{}

	switch l := cfg.Level; l {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info", "":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %v", l)
	}

	var handler slog.Handler
	switch f := cfg.Format; f {
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %v", f)
	}

	return slog.New(handler), nil
}

// Init configures Default to write to stderr.
func Init(cfg config.LoggingConfig) error {
	l, err := New(cfg, os.Stderr)
	if err != nil {
		return err
	}
	Default = l
	return nil
}

// Named returns Default tagged with a component name.
func Named(name string) *slog.Logger {
	return Default.With("name", name)
}
