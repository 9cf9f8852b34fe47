package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/datesim/internal/config"
)

// newLogger builds the structured logger. While the TUI owns the terminal
// the log goes to the configured file; otherwise to stderr.
// The returned closer is never nil.
func newLogger(cfg config.Config, prefix string, toFile bool) (*log.Logger, io.Closer) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if toFile {
		w, closer = openLogFile(cfg.Log.File)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer
}

func openLogFile(path string) (io.Writer, io.Closer) {
	path, err := config.ExpandPath(path)
	if err != nil || path == "" {
		return io.Discard, nopCloser{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard, nopCloser{}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, nopCloser{}
	}
	return f, f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
