package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/term2048/internal/config"
)

// newLogger opens the log file and returns a logger writing to it.
// The terminal belongs to the TUI, so when the file cannot be opened the
// logger discards everything. The returned closer is never nil.
func newLogger(path, level string) (*log.Logger, io.Closer, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", level, err)
		}
		lvl = parsed
	}

	var (
		out     io.Writer = io.Discard
		closer  io.Closer = io.NopCloser(nil)
		openErr error
	)
	if path != "" {
		if f, err := openLogFile(path); err == nil {
			out, closer = f, f
		} else {
			openErr = err
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "term2048",
		Level:           lvl,
	})
	return logger, closer, openErr
}

func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
