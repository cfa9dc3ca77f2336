// Package logging builds the application's slog.Logger.
// Records go to an append-only log file when one is configured,
// otherwise to the given fallback writer (usually stderr).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Logger is an io.Writer for slog handlers that opens its file lazily.
// Fields are ordered to minimize memory padding.
type Logger struct {
	fallback io.Writer
	file     *os.File
	slog     *slog.Logger
	path     string
	mu       sync.Mutex
	level    slog.Level
}

// New creates a Logger writing records at or above level.
// If path is empty, records go to fallback.
func New(path string, level slog.Level, fallback io.Writer) *Logger {
	if fallback == nil {
		fallback = io.Discard
	}
	l := &Logger{
		fallback: fallback,
		path:     path,
		level:    level,
	}
	l.slog = slog.New(slog.NewTextHandler(l, &slog.HandlerOptions{Level: level}))
	return l
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog returns the structured logger backed by l.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Level returns the minimum level.
func (l *Logger) Level() slog.Level {
	return l.level
}

// ensureFile opens or returns the log file. Caller holds l.mu.
func (l *Logger) ensureFile() (*os.File, error) {
	if l.file != nil {
		return l.file, nil
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	// G302: Log files are append-only and need read access by the operator group
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Write implements io.Writer. If the log file cannot be opened the record
// goes to the fallback writer instead of being lost.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" {
		return l.fallback.Write(p)
	}
	f, err := l.ensureFile()
	if err != nil {
		return l.fallback.Write(p)
	}
	return f.Write(p)
}

// Close closes the log file if it was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
