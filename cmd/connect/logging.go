package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	logFileName = "connect.log"
	maxLogSize  = 10 * 1024 * 1024 // Rotate past 10MB
)

// logSession is the file-backed logger of one run
type logSession struct {
	Logger *slog.Logger
	Path   string
	file   *os.File
}

// setupLogging opens dir/connect.log for append, rotating an oversized file to .old
// The terminal belongs to the renderer, so nothing is ever logged to stderr
func setupLogging(dir string, level slog.Level) (*logSession, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(path, path+".old"); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return &logSession{Logger: logger, Path: path, file: f}, nil
}

// Close flushes and closes the log file
func (s *logSession) Close() error {
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
