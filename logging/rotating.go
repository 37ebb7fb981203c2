package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingLogger writes log output to weekly files with a size cap and a
// retention window. It implements io.Writer so slog handlers can target it.
type RotatingLogger struct {
	logDir      string
	maxFileSize int64
	retention   time.Duration

	mu          sync.Mutex
	currentFile *os.File
	currentWeek string
	currentSize int64
	sequence    int

	done chan struct{}
	once sync.Once
}

// NewRotatingLogger creates a rotating logger writing under logDir.
func NewRotatingLogger(logDir string, retentionWeeks int, maxFileSize int64) *RotatingLogger {
	return &RotatingLogger{
		logDir:      logDir,
		maxFileSize: maxFileSize,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		done:        make(chan struct{}),
	}
}

// weekKey returns the ISO week key, e.g. "2026-W35".
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Write appends to the current log file, rotating on week change or when the
// size cap would be exceeded.
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	week := weekKey(time.Now())
	sizeExceeded := rl.maxFileSize > 0 && rl.currentSize+int64(len(p)) > rl.maxFileSize

	if rl.currentFile == nil || week != rl.currentWeek || sizeExceeded {
		if week != rl.currentWeek {
			rl.sequence = 0
		} else if sizeExceeded {
			rl.sequence++
		}
		if err := rl.rotate(week); err != nil {
			return 0, err
		}
	}

	n, err := rl.currentFile.Write(p)
	rl.currentSize += int64(n)
	return n, err
}

// rotate opens the target file for the week and sequence, closing the old one.
func (rl *RotatingLogger) rotate(week string) error {
	if rl.currentFile != nil {
		rl.currentFile.Close()
	}

	name := fmt.Sprintf("app-%s.log", week)
	if rl.sequence > 0 {
		name = fmt.Sprintf("app-%s_%02d.log", week, rl.sequence)
	}
	path := filepath.Join(rl.logDir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	size := int64(0)
	if info, statErr := file.Stat(); statErr == nil {
		size = info.Size()
	}

	rl.currentFile = file
	rl.currentWeek = week
	rl.currentSize = size
	return nil
}

// StartCleanup launches the periodic removal of files older than the
// retention window. Call Close to stop it.
func (rl *RotatingLogger) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-rl.done:
				return
			case <-ticker.C:
				rl.cleanupOldLogs()
			}
		}
	}()
}

func (rl *RotatingLogger) cleanupOldLogs() {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-rl.retention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "app-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(rl.logDir, entry.Name()))
		}
	}
}

// Close stops the cleanup goroutine and closes the current file.
func (rl *RotatingLogger) Close() error {
	rl.once.Do(func() { close(rl.done) })

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.currentFile != nil {
		err := rl.currentFile.Close()
		rl.currentFile = nil
		return err
	}
	return nil
}
