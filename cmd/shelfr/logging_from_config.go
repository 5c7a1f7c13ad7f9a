package main

import (
	"log/slog"
	"path/filepath"

	"shelfr/internal/config"
	"shelfr/internal/logging"
)

// newLoggerFromConfig builds the process logger from the [logging] section,
// writing to stderr and a log file under the configured log dir.
func newLoggerFromConfig(cfg *config.Config) (*slog.Logger, error) {
	outputs := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, "shelfr.log"))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}
