// Package logging builds the charmbracelet loggers used by the CLI, the
// window front-end and the SSH server.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w with timestamps and a component prefix.
func New(w io.Writer, prefix, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// Open creates a logger for a full-screen front-end, where stderr belongs
// to the UI. An empty path discards output. The returned closer is never nil.
func Open(path, prefix, level string) (*log.Logger, io.Closer, error) {
	if path == "" {
		l, err := New(io.Discard, prefix, level)
		return l, io.NopCloser(nil), err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	l, err := New(f, prefix, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, f, nil
}
