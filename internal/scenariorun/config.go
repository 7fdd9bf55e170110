// Package scenariorun drives a running SWIRI server through repeated
// scenario and classify cycles and reports how well the classifier agrees
// with the selected scenario.
package scenariorun

import "time"

// Config holds configuration for a scenario run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Rounds     int           // Cycles per scenario
	Workers    int           // Concurrent sessions
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional JSON report path
	Verbose    bool          // Log every cycle
}

// Scenario names accepted by the API, in report order.
var scenarioNames = []string{"NORMAL", "PLAYING", "DANGER"}

// labelNames are the classifier outputs, in report order.
var labelNames = []string{"NORMAL", "PLAYING", "DANGER"}

// sessionView is the subset of the session response the runner reads.
type sessionView struct {
	ID         string `json:"id"`
	Scenario   string `json:"scenario"`
	Prediction *struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	} `json:"prediction"`
}

type modelStatus struct {
	Available bool   `json:"available"`
	Path      string `json:"path"`
	Error     string `json:"error"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report is the outcome of a run.
type Report struct {
	RunID      string             `json:"run_id"`
	BaseURL    string             `json:"base_url"`
	Rounds     int                `json:"rounds"`
	StartTime  time.Time          `json:"start_time"`
	Duration   time.Duration      `json:"duration"`
	Matrix     *ConfusionMatrix   `json:"matrix"`
	Failed     int                `json:"failed"`
	Accuracy   float64            `json:"accuracy"`
	Confidence map[string]float64 `json:"mean_confidence"`
}
