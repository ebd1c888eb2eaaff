package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/config"
)

// Init builds the process logger from conf, writing to w, and installs it as
// the slog default.
func Init(conf config.LogConf, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(conf.Level)}

	var handler slog.Handler
	switch strings.ToLower(conf.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// ParseLevel maps a level name to a slog.Level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
