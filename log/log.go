package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger provides a concurrency-safe simplified logging interface.
//
// The zero Logger discards everything, so libraries can hold one without
// checking whether logging was configured.
type Logger struct {
	*slog.Logger
	config
}

// Make creates a new [Logger] that writes to the specified writer.
// The default configuration is [DefaultFormat], [DefaultLevel],
// [DefaultTimeLayout], [DefaultPretty], and caller info disabled.
//
// Optional configuration can be applied using functional options like
// [WithFormat], [WithLevel], [WithTimeLayout], and [WithCaller].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Wrap returns a new [Logger] configured like l with opts applied on top.
// Attributes added to l with [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := l.config
	if l.Logger == nil {
		cfg = makeConfig(nil)
	}

	cfg = apply(cfg, opts...)

	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// With returns a new [Logger] that includes the given attributes in each log
// message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
		config: l.config,
	}
}

// Level returns the current minimum log level.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the current log output format.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	return l.format
}

// TraceContext logs a message at Trace level with the provided context.
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelTrace, msg, attrs)
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelTrace, msg, attrs)
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelDebug, msg, attrs)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelDebug, msg, attrs)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelInfo, msg, attrs)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelInfo, msg, attrs)
}

// WarnContext logs a message at Warn level with the provided context.
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelWarn, msg, attrs)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelWarn, msg, attrs)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, callerSkip, LevelError, msg, attrs)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), callerSkip, LevelError, msg, attrs)
}

// callerSkip is the runtime.Callers skip count that identifies the code
// calling a Logger method: 0 is runtime.Callers, 1 is logContext and 2 is
// the Logger method itself.
const callerSkip = 3

// logContext writes a log message at the specified level with the provided
// context, attributing it to the caller skip frames up the stack.
func (l Logger) logContext(
	ctx context.Context,
	skip int,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	// Silently return for zero value loggers
	if l.Logger == nil || !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr

	runtime.Callers(skip, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.Handler().Handle(ctx, r)
}
