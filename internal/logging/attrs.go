package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// Warning describes a recoverable problem. Every warning names its event, a
// hint for the operator and what the run lost because of it.
type Warning struct {
	Event  string
	Hint   string
	Impact string
}

// Log writes msg at warn level. Empty fields fall back to generic text, and
// attrs repeating event_type, error_hint or impact override w.
func (w Warning) Log(logger *slog.Logger, msg string, attrs ...Attr) {
	if logger == nil {
		return
	}
	fields := [...]Attr{
		String(FieldEventType, orDefault(w.Event, "warning")),
		String(FieldErrorHint, orDefault(w.Hint, "check logs for details")),
		String(FieldImpact, orDefault(w.Impact, "conversion continued with warnings")),
	}
	args := make([]any, 0, len(fields)+len(attrs))
	for _, field := range fields {
		if !hasKey(attrs, field.Key) {
			args = append(args, field)
		}
	}
	for _, attr := range attrs {
		args = append(args, attr)
	}
	logger.Warn(msg, args...)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func hasKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
