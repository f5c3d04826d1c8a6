package logging

import (
	"context"
	"log/slog"
)

// SlogLogger forwards to a *slog.Logger, so the handler decides format and
// level.
type SlogLogger struct {
	base *slog.Logger
}

// NewSlogLogger wraps base. A nil base means slog.Default().
func NewSlogLogger(base *slog.Logger) *SlogLogger {
	if base == nil {
		base = slog.Default()
	}
	return &SlogLogger{base: base}
}

// Nop returns a logger whose handler is never enabled.
func Nop() *SlogLogger {
	return NewSlogLogger(slog.New(slog.DiscardHandler))
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.emit(ctx, slog.LevelDebug, msg, args)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.emit(ctx, slog.LevelInfo, msg, args)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.emit(ctx, slog.LevelWarn, msg, args)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.emit(ctx, slog.LevelError, msg, args)
}

func (s *SlogLogger) With(args ...any) Logger {
	if len(args) == 0 {
		return s
	}
	return &SlogLogger{base: s.base.With(args...)}
}

func (s *SlogLogger) emit(ctx context.Context, level slog.Level, msg string, args []any) {
	s.base.Log(ctx, level, msg, args...)
}
