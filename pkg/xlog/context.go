package xlog

import (
	"context"
)

var (
	// C is a short alias of FromContext function
	C = FromContext
)

type contextKey struct{}

// FromContext returns the Logger carried by ctx, or the default one.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	return Default()
}

// NewContext returns a child context carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// WithContext returns a child context whose Logger has args added.
func WithContext(ctx context.Context, args ...any) context.Context {
	return NewContext(ctx, FromContext(ctx).With(args...))
}
