package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/fatih/color"
)

// New returns a logger for the given format. "pretty" yields a colorized
// line handler meant for local development; anything else falls back to the
// JSON handler used in production.
func New(format string) *slog.Logger {
	if format == "pretty" {
		return slog.New(NewPrettyHandler(os.Stdout, slog.LevelDebug))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// PrettyHandler is a minimal slog.Handler that prints colorized,
// human-readable lines.
type PrettyHandler struct {
	l     *log.Logger
	level slog.Level
}

func NewPrettyHandler(out io.Writer, level slog.Level) *PrettyHandler {
	return &PrettyHandler{
		l:     log.New(out, "", 0),
		level: level,
	}
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.HiBlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	attrsStr := ""
	r.Attrs(func(a slog.Attr) bool {
		attrsStr += color.GreenString(a.Key) + "=" + fmt.Sprint(a.Value.Any()) + " "
		return true
	})

	h.l.Println(
		r.Time.Format("15:04:05.000"),
		level,
		r.Message,
		attrsStr,
	)
	return nil
}

func (h *PrettyHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *PrettyHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}
