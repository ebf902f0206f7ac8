package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFile is the fallback report destination. os.TempDir resolves to
// /tmp on Linux and the user's Temp directory on Windows, so the path works
// on both without configuration.
func DefaultFile() string {
	return filepath.Join(os.TempDir(), "reliability_errors.log")
}

// Sink is the probe's log destination: timestamped leveled lines to stdout
// and to an append-only text file. It is handed to the runner and executor
// at construction and closed exactly once at process end; there is no
// package-level logger.
type Sink struct {
	*slog.Logger
	file      *os.File
	closeOnce sync.Once
}

// NewSink opens (or creates) the report file in append mode and wires a
// text handler over stdout plus the file. An empty path means DefaultFile.
func NewSink(path string) (*Sink, error) {
	if path == "" {
		path = DefaultFile()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	h := slog.NewTextHandler(io.MultiWriter(os.Stdout, f), nil)
	return &Sink{Logger: slog.New(h), file: f}, nil
}

// Discard returns a sink that drops every line. Test helper.
func Discard() *Sink {
	return &Sink{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Path returns the file the sink appends to, or "" for a discard sink.
func (s *Sink) Path() string {
	if s.file == nil {
		return ""
	}
	return s.file.Name()
}

// Close syncs and closes the report file so no buffered line is lost.
// Only the first call does anything; later calls return nil.
func (s *Sink) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.file == nil {
			return
		}
		err = s.file.Sync()
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	})
	return err
}
