package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// NewSlog returns the operator logger used for diagnostics (HTTP requests,
// sink failures). These lines are not part of the user-facing event log.
func NewSlog(w io.Writer, level slog.Level) *slog.Logger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = IsTerminal(f)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !color,
	}))
}

// ParseSlogLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown values return slog.LevelInfo.
func ParseSlogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
