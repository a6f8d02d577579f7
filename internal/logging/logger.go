package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application-wide JSON slog logger at the provided level.
// Unknown level strings fall back to info rather than failing boot.
func New(level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// Discard returns a logger that drops all output, for tests that wire a
// notifier or middleware but do not assert on log lines.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
