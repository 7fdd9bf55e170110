package scenariorun

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/swiri/pkg/logger"
)

// SetupLogging initializes the logger, writing to stderr and, when logFile
// is set, to that file as well.
func SetupLogging(logFile string, verbose bool) error {
	var w io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, file)
	}
	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the scenario runner.
func ShowHelp() {
	os.Stdout.WriteString(`SWIRI Scenario Runner
=====================

Drives a running SWIRI server through repeated scenario and classify cycles
and prints a confusion matrix of selected scenario against predicted label.

Usage:
  go run ./cmd/scenario-runner [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -rounds int
        Cycles per scenario (default 50)
  -workers int
        Concurrent sessions (default 4)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write a JSON report to this file
  -log string
        Also write logs to this file
  -verbose
        Log every cycle
  -help
        Show this help message

Examples:
  go run ./cmd/scenario-runner -rounds 200
  go run ./cmd/scenario-runner -url http://localhost:8080 -output report.json
`)
}
