package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system, writing logs to <dir>/pipeboard.log
// at the given level. Uses text format for human readability.
func Init(dir string, level slog.Level) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Open log file in append mode
	logPath := filepath.Join(dir, "pipeboard.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output (used by migrate) to the same file
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return nil
}
