package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. The TUI owns stdout, so all log output
// goes to a JSON file; if the file cannot be opened the logger is silenced
// rather than corrupting the screen.
func New(path, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	logger.SetOutput(f)
	return logger
}
