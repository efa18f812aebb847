package xlog

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

const (
	// skip [runtime.Callers, emit, the exported method]
	defaultCallerSkip = 3
)

// New creates a Logger from the config.
func New(c Config) *Logger {
	h := c.BuildHandler()
	if h == nil {
		panic("nil Handler")
	}
	return &Logger{handler: h, callerSkip: defaultCallerSkip}
}

// Logger is a slog front end with printf helpers, a runtime level and a
// configurable caller skip.
type Logger struct {
	handler    slog.Handler
	callerSkip int
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// SetLevel changes the level of l and every logger derived from it.
func (l *Logger) SetLevel(lvl slog.Level) {
	SetHandlerLevel(l.handler, lvl)
}

// AddCallerSkip increases the number of callers skipped by caller annotation.
func (l *Logger) AddCallerSkip(skip int) *Logger {
	c := l.clone()
	c.callerSkip += skip
	return c
}

// Handler returns l's Handler.
func (l *Logger) Handler() slog.Handler { return l.handler }

// With returns a Logger that includes the given attributes in each output
// operation, args are converted as in [slog.Logger.With].
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	c := l.clone()
	c.handler = slog.New(l.handler).With(args...).Handler()
	return c
}

// WithGroup returns a Logger that starts a group, if name is non-empty.
func (l *Logger) WithGroup(name string) *Logger {
	if name == "" {
		return l
	}
	c := l.clone()
	c.handler = l.handler.WithGroup(name)
	return c
}

// Enabled reports whether l emits log records at the given context and level.
func (l *Logger) Enabled(ctx context.Context, level slog.Level) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.handler.Enabled(ctx, level)
}

// Log emits a record at level with args as in [slog.Logger.Log].
func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	l.emit(ctx, level, msg, func(r *slog.Record) { r.Add(args...) })
}

// LogAttrs is a more efficient version of [Logger.Log] that accepts only Attrs.
func (l *Logger) LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	l.emit(ctx, level, msg, func(r *slog.Record) { r.AddAttrs(attrs...) })
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) {
	l.emit(context.Background(), LevelDebug, msg, func(r *slog.Record) { r.Add(args...) })
}

// DebugContext logs at LevelDebug with the given context.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelDebug, msg, func(r *slog.Record) { r.Add(args...) })
}

// Debugf logs at LevelDebug with the given format.
func (l *Logger) Debugf(format string, args ...any) {
	l.emit(context.Background(), LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) {
	l.emit(context.Background(), LevelInfo, msg, func(r *slog.Record) { r.Add(args...) })
}

// InfoContext logs at LevelInfo with the given context.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelInfo, msg, func(r *slog.Record) { r.Add(args...) })
}

// Infof logs at LevelInfo with the given format.
func (l *Logger) Infof(format string, args ...any) {
	l.emit(context.Background(), LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) {
	l.emit(context.Background(), LevelWarn, msg, func(r *slog.Record) { r.Add(args...) })
}

// WarnContext logs at LevelWarn with the given context.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelWarn, msg, func(r *slog.Record) { r.Add(args...) })
}

// Warnf logs at LevelWarn with the given format.
func (l *Logger) Warnf(format string, args ...any) {
	l.emit(context.Background(), LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) {
	l.emit(context.Background(), LevelError, msg, func(r *slog.Record) { r.Add(args...) })
}

// ErrorContext logs at LevelError with the given context.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, LevelError, msg, func(r *slog.Record) { r.Add(args...) })
}

// Errorf logs at LevelError with the given format.
func (l *Logger) Errorf(format string, args ...any) {
	l.emit(context.Background(), LevelError, fmt.Sprintf(format, args...), nil)
}

// emit must always be called directly by an exported logging method, because
// it uses a fixed call depth to obtain the pc.
func (l *Logger) emit(ctx context.Context, level slog.Level, msg string, fill func(*slog.Record)) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.handler.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(l.callerSkip, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if fill != nil {
		fill(&r)
	}
	_ = l.handler.Handle(ctx, r) //nolint:errcheck
}
