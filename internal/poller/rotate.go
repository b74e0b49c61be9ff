package poller

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RotatingWriter appends to a log file named after the current date
// (ema_2006-01-02.log) and switches files when the date changes, i.e. at
// midnight local time. Files are opened in append mode so restarts continue
// the day's log.
type RotatingWriter struct {
	dir    string
	prefix string

	mu   sync.Mutex
	file *os.File
	day  string

	now func() time.Time // test hook
}

// NewRotatingWriter creates a writer that logs into dir with the given
// filename prefix.
func NewRotatingWriter(dir, prefix string) *RotatingWriter {
	return &RotatingWriter{
		dir:    dir,
		prefix: prefix,
		now:    time.Now,
	}
}

// Path returns the file path for the current date.
func (w *RotatingWriter) Path() string {
	return w.pathFor(w.now().Format("2006-01-02"))
}

func (w *RotatingWriter) pathFor(day string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.log", w.prefix, day))
}

// Write appends p to the current day's file, rotating first if the date
// rolled over since the last write.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := w.now().Format("2006-01-02")
	if w.file == nil || day != w.day {
		if err := w.rotate(day); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

// rotate closes the previous file and opens the one for day. Callers hold
// w.mu.
func (w *RotatingWriter) rotate(day string) error {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}

	f, err := os.OpenFile(w.pathFor(day), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	w.file = f
	w.day = day
	return nil
}

// Close flushes and releases the current file. The writer is reusable; the
// next Write reopens.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.day = ""
	return err
}
