package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	rowKey   contextKey = "row"
)

// WithRunID annotates context with the conversion run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRow annotates context with the 1-based input row being processed.
func WithRow(ctx context.Context, row int) context.Context {
	if row <= 0 {
		return ctx
	}
	return context.WithValue(ctx, rowKey, row)
}

// RowFromContext returns the input row number if present.
func RowFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(rowKey)
	switch val := v.(type) {
	case int:
		return val, val > 0
	case int64:
		return int(val), val > 0
	default:
		return 0, false
	}
}
