package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RotatingWriter appends to one log file per ISO week, starting a numbered
// continuation file when the current one exceeds maxFileSize. It is safe for
// concurrent use by the slog handler.
type RotatingWriter struct {
	dir         string
	maxFileSize int64

	mu       sync.Mutex
	file     *os.File
	week     string
	size     int64
	sequence int
}

// NewRotatingWriter creates a writer rotating inside dir. The directory is
// created if missing.
func NewRotatingWriter(dir string, maxFileSize int64) (*RotatingWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	return &RotatingWriter{dir: dir, maxFileSize: maxFileSize}, nil
}

// weekKey returns the ISO week key, e.g. "2026-W34".
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	week := weekKey(time.Now())
	if w.file == nil || week != w.week || (w.maxFileSize > 0 && w.size+int64(len(p)) > w.maxFileSize) {
		if err := w.rotate(week); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// rotate opens the next file for the target week. Caller holds the lock.
func (w *RotatingWriter) rotate(week string) error {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}

	if week != w.week {
		w.sequence = 0
	} else {
		w.sequence++
	}

	name := fmt.Sprintf("app-%s.log", week)
	if w.sequence > 0 {
		name = fmt.Sprintf("app-%s_%02d.log", week, w.sequence)
	}

	path := filepath.Join(w.dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	size := int64(0)
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	w.file = file
	w.week = week
	w.size = size
	return nil
}

// Close closes the current log file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// SetupLogger builds the application logger: JSON records to stdout and the
// rotating weekly file. When the log directory cannot be prepared the logger
// degrades to stdout only.
func SetupLogger(logDir, level string, maxFileSize int64) *slog.Logger {
	var out io.Writer = os.Stdout

	writer, err := NewRotatingWriter(logDir, maxFileSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "file logging disabled: %v\n", err)
	} else {
		out = io.MultiWriter(os.Stdout, writer)
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CleanupOldLogs removes rotated log files older than the retention period.
// It returns the number of files removed.
func CleanupOldLogs(logDir string, retention time.Duration) (int, error) {
	matches, err := filepath.Glob(filepath.Join(logDir, "app-*.log"))
	if err != nil {
		return 0, fmt.Errorf("failed to list log files: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	removed := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				Warn("Failed to remove old log file", "file", path, "error", err)
				continue
			}
			removed++
		}
	}

	return removed, nil
}
