// Package logging routes the process logs to a file so they never draw over
// the terminal UI.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	cblog "github.com/charmbracelet/log"
)

// EnvLogFile receives the path of the log file once Setup has run.
const EnvLogFile = "GRIDSEL_LOG_FILE"

// EnvLogLevel selects the level: DEBUG, INFO, WARN, ERROR or FATAL.
const EnvLogLevel = "GRIDSEL_LOG_LEVEL"

// ParseLevel maps a level name to a charmbracelet/log level. Unknown names
// give InfoLevel.
func ParseLevel(s string) cblog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return cblog.DebugLevel
	case "WARN", "WARNING":
		return cblog.WarnLevel
	case "ERROR":
		return cblog.ErrorLevel
	case "FATAL":
		return cblog.FatalLevel
	default:
		return cblog.InfoLevel
	}
}

// Setup creates a log file in dir (the system temp dir when empty) and makes
// it the destination of both the standard logger and the default
// charmbracelet logger. The caller closes the returned file on exit.
func Setup(dir string) (*os.File, error) {
	f, err := os.CreateTemp(dir, "gridsel-*.log")
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	_ = os.Setenv(EnvLogFile, f.Name())

	// Standard library log to same file (for any remaining log.Printf)
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cblog.SetDefault(NewLogger(f, os.Getenv(EnvLogLevel)))
	cblog.With("component", "app").Info("gridsel started", "logFile", f.Name())
	return f, nil
}

// NewLogger builds a timestamped logger writing to w at the named level.
func NewLogger(w io.Writer, level string) *cblog.Logger {
	logger := cblog.NewWithOptions(w, cblog.Options{ReportTimestamp: true})
	logger.SetLevel(ParseLevel(level))
	return logger
}
