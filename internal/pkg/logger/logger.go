package logger

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process logger: text output in development, JSON elsewhere.
func New(env string, level int) *slog.Logger {
	return newWithWriter(os.Stdout, env, level)
}

func newWithWriter(w io.Writer, env string, level int) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(level)}
	if env == "development" || env == "local" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
