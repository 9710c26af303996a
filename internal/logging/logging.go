// Package logging configures the process-wide structured logger.
package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stderr with the level taken from the
// LOG_LEVEL environment variable (debug, info, warn, error).
func New(component string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          component,
	})
	logger.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))
	return logger
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
