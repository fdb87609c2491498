// Package log builds the slog.Logger handed to every component at startup.
// Nothing in the server logs through a package-level default; the logger is
// threaded through constructors.
package log

import (
	"log/slog"
	"os"
)

// ParseLevel maps a config/flag string to a slog level. Unknown strings fall
// back to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger at the named level. debug forces the debug level
// regardless of the configured one.
func New(level string, debug bool) *slog.Logger {
	lvl := ParseLevel(level)
	if debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
