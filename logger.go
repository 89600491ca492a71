package probing

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger with helpers for growth and persistence events.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler logs text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler != nil {
		return &Logger{slog.New(handler)}
	}

	return NewTextLogger(slog.LevelInfo)
}

// NewTextLogger logs text at the given level to stderr. The CLIs use it for
// --log-level.
func NewTextLogger(level slog.Level) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	return &Logger{slog.New(slog.NewTextHandler(os.Stderr, opts))}
}

// NoopLogger is the default of every table.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// LogGrow logs a completed doubling.
func (l *Logger) LogGrow(buckets, entries, allocated int) {
	l.Debug("hash table doubled",
		"buckets", buckets,
		"entries", entries,
		"allocated", allocated,
	)
}

// LogSave logs a table image written to path.
func (l *Logger) LogSave(path string, entries, allocated int, err error) {
	if err != nil {
		l.Error("save failed",
			"path", path,
			"error", err,
		)
		return
	}

	l.Info("hash table saved",
		"path", path,
		"entries", entries,
		"allocated", allocated,
	)
}

// LogLoad logs a table image read from path.
func (l *Logger) LogLoad(path string, entries, allocated int, err error) {
	if err != nil {
		l.Error("load failed",
			"path", path,
			"error", err,
		)
		return
	}

	l.Info("hash table loaded",
		"path", path,
		"entries", entries,
		"allocated", allocated,
	)
}
