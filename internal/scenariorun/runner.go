package scenariorun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/swiri/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// ErrModelUnavailable is returned when the server has no classifier loaded.
var ErrModelUnavailable = errors.New("server has no classifier loaded")

// job is one scenario and classify cycle.
type job struct {
	scenario string
	round    int
}

// Run executes the scenario run and writes the confusion matrix to out.
func Run(ctx context.Context, config *Config, out io.Writer) (*Report, error) {
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	workers := config.Workers
	if workers <= 0 {
		workers = 1
	}

	report := &Report{
		RunID:     uuid.NewString(),
		BaseURL:   config.BaseURL,
		Rounds:    config.Rounds,
		StartTime: time.Now(),
		Matrix:    NewConfusionMatrix(),
	}
	log := logger.Get().With(logger.String("runID", report.RunID))
	client := newHTTPClient(config.BaseURL, report.RunID, config.Timeout)

	log.Info(ctx, "starting scenario run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("rounds", config.Rounds),
		logger.Int("workers", workers),
		logger.Duration("timeout", config.Timeout),
	)

	// Step 1: Check service health and model
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}
	model, err := client.Model(ctx)
	if err != nil {
		return nil, fmt.Errorf("model status check failed: %w", err)
	}
	if !model.Available {
		return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, model.Error)
	}
	log.Info(ctx, "service is ready", logger.String("modelPath", model.Path))

	// Step 2: Run cycles across workers, each with its own session
	jobs := make(chan job, workers*2)
	var (
		wg     sync.WaitGroup
		failed int64
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			sess, err := client.CreateSession(ctx)
			if err != nil {
				log.Error(ctx, "failed to create session", logger.Int("worker", workerID), logger.Error(err))
				for range jobs {
					atomic.AddInt64(&failed, 1)
				}
				return
			}
			for j := range jobs {
				if err := runCycle(ctx, client, sess.ID, j, report.Matrix); err != nil {
					atomic.AddInt64(&failed, 1)
					log.Warn(ctx, "cycle failed",
						logger.String("scenario", j.scenario),
						logger.Int("round", j.round),
						logger.Error(err),
					)
					continue
				}
				if config.Verbose {
					log.Debug(ctx, "cycle completed",
						logger.String("scenario", j.scenario),
						logger.Int("round", j.round),
						logger.Int("worker", workerID),
					)
				}
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for round := 1; round <= config.Rounds; round++ {
			for _, sc := range scenarioNames {
				select {
				case <-ctx.Done():
					return
				case jobs <- job{scenario: sc, round: round}:
				}
			}
		}
	}()
	wg.Wait()

	// Step 3: Summarize
	report.Duration = time.Since(report.StartTime)
	report.Failed = int(atomic.LoadInt64(&failed))
	report.Accuracy = report.Matrix.Accuracy()
	report.Confidence = report.Matrix.MeanConfidence()

	if err := report.Matrix.Render(out); err != nil {
		return report, fmt.Errorf("failed to write matrix: %w", err)
	}
	_, _ = fmt.Fprintf(out, "accuracy %.1f%%, failed cycles %d, duration %s\n",
		report.Accuracy*100, report.Failed, report.Duration.Round(time.Millisecond))

	if config.OutputFile != "" {
		if err := saveReport(config.OutputFile, report); err != nil {
			log.Warn(ctx, "failed to save report", logger.Error(err))
		} else {
			log.Info(ctx, "report saved", logger.String("file", config.OutputFile))
		}
	}

	log.Info(ctx, "scenario run completed",
		logger.Float64("accuracy", report.Accuracy),
		logger.Int("failed", report.Failed),
	)
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// runCycle selects the scenario, classifies the window and records the label.
func runCycle(ctx context.Context, client *HTTPClient, sessionID string, j job, m *ConfusionMatrix) error {
	if err := client.SelectScenario(ctx, sessionID, j.scenario); err != nil {
		return err
	}
	v, err := client.Classify(ctx, sessionID)
	if err != nil {
		return err
	}
	if v.Prediction == nil {
		return errors.New("classify response has no prediction")
	}
	m.Add(j.scenario, v.Prediction.Label, v.Prediction.Confidence)
	return nil
}

// saveReport writes the report as indented JSON.
func saveReport(filename string, report *Report) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(filename, data, filePermission)
}
