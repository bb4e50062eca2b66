// Package logging configures the process-wide slog logger: stderr always,
// plus an optional size-bounded log file. File logging is best-effort — a
// failing disk never surfaces as an error to the code that logs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultMaxBytes caps the log file's size before it is rotated.
const DefaultMaxBytes = 1 << 20 // 1 MiB

// Init installs the default slog logger. When path is non-empty, records are
// also appended to a bounded file at that path; when the bound is reached the
// file is renamed to "<path>.old" (replacing any previous generation) and a
// fresh file is started. The returned cleanup closes the file.
func Init(path, level string) func() {
	writers := []io.Writer{os.Stderr}

	var bf *boundedFile
	if path != "" {
		bf = &boundedFile{path: path, max: DefaultMaxBytes}
		writers = append(writers, bf)
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	slog.SetDefault(slog.New(handler))

	return func() {
		if bf != nil {
			bf.close()
		}
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// boundedFile is an append-only file writer with single-generation rotation.
// Write never returns an error: logging must not change the behavior of the
// code doing the logging.
type boundedFile struct {
	mu   sync.Mutex
	path string
	max  int64
	f    *os.File
	size int64
}

func (w *boundedFile) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil && !w.open() {
		return len(p), nil
	}

	if w.size+int64(len(p)) > w.max {
		w.rotate()
		if w.f == nil {
			return len(p), nil
		}
	}

	n, err := w.f.Write(p)
	if err == nil {
		w.size += int64(n)
	}
	return len(p), nil
}

// open prepares the append file, creating parent directories as needed.
func (w *boundedFile) open() bool {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return false
		}
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return false
	}
	w.f = f
	if st, err := f.Stat(); err == nil {
		w.size = st.Size()
	}
	return true
}

// rotate moves the current file aside and starts a fresh one. The previous
// ".old" generation, if any, is replaced.
func (w *boundedFile) rotate() {
	_ = w.f.Close()
	w.f = nil
	w.size = 0
	_ = os.Rename(w.path, w.path+".old")
	w.open()
}

func (w *boundedFile) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
}
