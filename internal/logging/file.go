package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures the rotating log file used by the interactive
// client, whose stdout belongs to the REPL.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Debug      bool
}

// NewRotatingWriter returns a size-rotated writer for opts.Path.
func NewRotatingWriter(opts FileOptions) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   false,
	}
}

// NewJSONLogger builds a SlogLogger emitting JSON lines to w.
func NewJSONLogger(w io.Writer, debug bool) *SlogLogger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// NewFileLogger combines NewRotatingWriter and NewJSONLogger. The returned
// closer flushes and releases the file.
func NewFileLogger(opts FileOptions) (*SlogLogger, io.Closer) {
	w := NewRotatingWriter(opts)
	return NewJSONLogger(w, opts.Debug), w
}
