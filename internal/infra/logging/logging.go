package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps debug, info, warn and error to a slog level. Anything
// else is info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
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

// New builds the process logger on stdout and installs it as the default.
func New(logFormat, logLevel string) *slog.Logger {
	logger := NewWithWriter(os.Stdout, logFormat, logLevel)

	slog.SetDefault(logger)

	return logger
}

// NewWithWriter builds a logger writing to w. The format is json unless text is requested.
func NewWithWriter(w io.Writer, logFormat, logLevel string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	}

	var handler slog.Handler

	switch logFormat {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With("service", "procadmin")
}
