package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/swiri/internal/scenariorun"
)

// Default configuration constants.
const (
	defaultRounds     = 50
	defaultWorkers    = 4
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		rounds     = flag.Int("rounds", defaultRounds, "Cycles per scenario")
		workers    = flag.Int("workers", defaultWorkers, "Concurrent sessions")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write a JSON report to this file")
		logFile    = flag.String("log", "", "Also write logs to this file")
		verbose    = flag.Bool("verbose", false, "Log every cycle")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		scenariorun.ShowHelp()
		return
	}

	if err := scenariorun.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := &scenariorun.Config{
		BaseURL:    *baseURL,
		Rounds:     *rounds,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	}

	if _, err := scenariorun.Run(ctx, config, os.Stdout); err != nil {
		os.Stderr.WriteString("Scenario run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
