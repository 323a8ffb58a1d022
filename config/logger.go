package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns the process logger for the given environment.
// Production uses JSON handler; otherwise text handler.
// LOG_LEVEL may be: debug, info, warn, error (default: info).
func NewLogger(environment string) *slog.Logger {
	return newLogger(os.Stdout, environment, os.Getenv("LOG_LEVEL"))
}

func newLogger(w io.Writer, environment, levelName string) *slog.Logger {
	level := slog.LevelInfo
	if levelName != "" {
		if err := level.UnmarshalText([]byte(strings.TrimSpace(levelName))); err != nil {
			level = slog.LevelInfo
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if environment == "production" {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("service", "weddingplanner")
}
