// Package session holds the per-user demo workflow state and the operations
// that advance it. State is owned by the caller; nothing here is global.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/swiri/internal/domain/features"
	"github.com/okian/swiri/internal/domain/model"
)

// Defaults for a new session.
const (
	DefaultLocation   = "School Playground"
	DefaultMaxLogs    = 500
	dangerLogMarker   = "DANGER"
	predictionLogText = "Prediction: "
)

// Generator synthesizes a window for a scenario.
type Generator interface {
	Generate(ctx context.Context, s model.Scenario) (model.SensorWindow, error)
}

// Predictor classifies a feature vector.
type Predictor interface {
	Predict(ctx context.Context, fv model.FeatureVector) (model.Prediction, error)
}

// Confirmation is the parent's response to a danger alert.
type Confirmation string

// Confirmation outcomes.
const (
	ConfirmationNone       Confirmation = ""
	ConfirmationConfirmed  Confirmation = "CONFIRMED"
	ConfirmationFalseAlarm Confirmation = "FALSE_ALARM"
)

// ParseConfirmation validates an outcome name.
func ParseConfirmation(s string) (Confirmation, error) {
	switch c := Confirmation(strings.ToUpper(strings.TrimSpace(s))); c {
	case ConfirmationConfirmed, ConfirmationFalseAlarm:
		return c, nil
	}
	return ConfirmationNone, fmt.Errorf("%w: %q", ErrInvalidConfirmation, s)
}

// Option applies a configuration option to a State.
type Option func(*State)

// WithLocation sets the reported child location.
func WithLocation(loc string) Option {
	return func(s *State) {
		if loc != "" {
			s.Location = loc
		}
	}
}

// WithMaxLogs bounds the event log; the oldest entries are dropped first.
func WithMaxLogs(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.maxLogs = n
		}
	}
}

// WithClock overrides the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

// State is one user's demo session.
type State struct {
	ID             string                `json:"id"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Scenario       model.Scenario        `json:"scenario"`
	Window         *model.SensorWindow   `json:"window,omitempty"`
	Features       *model.FeatureVector  `json:"features,omitempty"`
	Prediction     *model.Prediction     `json:"prediction,omitempty"`
	Location       string                `json:"location"`
	ImageCaptured  bool                  `json:"image_captured"`
	Confirmation   Confirmation          `json:"confirmation,omitempty"`
	AlertTriggered bool                  `json:"alert_triggered"`
	Logs           []model.EventLogEntry `json:"logs"`

	maxLogs int
	now     func() time.Time
}

// New creates an empty session.
func New(id string, opts ...Option) *State {
	s := &State{
		ID:       id,
		Location: DefaultLocation,
		Logs:     []model.EventLogEntry{},
		maxLogs:  DefaultMaxLogs,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.CreatedAt = s.now()
	s.UpdatedAt = s.CreatedAt
	return s
}

// SelectScenario generates a fresh window for sc and resets everything
// derived from the previous window.
func (s *State) SelectScenario(ctx context.Context, gen Generator, sc model.Scenario) error {
	w, err := gen.Generate(ctx, sc)
	if err != nil {
		return err
	}
	s.Scenario = sc
	s.Window = &w
	s.Features = nil
	s.Prediction = nil
	s.ImageCaptured = false
	s.Confirmation = ConfirmationNone
	s.AlertTriggered = false
	return s.log(model.EventScenario, scenarioDetails(sc))
}

// Classify extracts features from the current window and runs the
// predictor. Features are kept even if prediction fails.
func (s *State) Classify(ctx context.Context, p Predictor) (model.Prediction, error) {
	if p == nil {
		return model.Prediction{}, ErrClassifierNotDefined
	}
	if s.Window == nil {
		return model.Prediction{}, ErrNoWindow
	}
	fv, err := features.Extract(*s.Window)
	if err != nil {
		return model.Prediction{}, err
	}
	s.Features = &fv

	pred, err := p.Predict(ctx, fv)
	if err != nil {
		s.touch()
		return model.Prediction{}, err
	}
	s.Prediction = &pred
	s.AlertTriggered = pred.Label == model.LabelDanger
	if err := s.log(model.EventAIProcessing, predictionLogText+pred.Label.String()); err != nil {
		return model.Prediction{}, err
	}
	return pred, nil
}

// RecordCapture notes that an emergency photo was taken. Only valid while
// the current prediction is DANGER.
func (s *State) RecordCapture(_ context.Context) error {
	if err := s.requireDanger(); err != nil {
		return err
	}
	s.ImageCaptured = true
	return s.log(model.EventCamera, "Emergency photo captured")
}

// Confirm records the parent's response to a danger alert.
func (s *State) Confirm(_ context.Context, c Confirmation) error {
	var details string
	switch c {
	case ConfirmationConfirmed:
		details = "Emergency confirmed by parent"
	case ConfirmationFalseAlarm:
		details = "Marked as false alarm by parent"
	default:
		return fmt.Errorf("%w: %q", ErrInvalidConfirmation, c)
	}
	if err := s.requireDanger(); err != nil {
		return err
	}
	s.Confirmation = c
	return s.log(model.EventConfirmation, details)
}

// ClearLogs empties the event log.
func (s *State) ClearLogs() {
	s.Logs = []model.EventLogEntry{}
	s.touch()
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s *State) Clone() *State {
	c := *s
	if s.Window != nil {
		w := s.Window.Clone()
		c.Window = &w
	}
	if s.Features != nil {
		fv := *s.Features
		c.Features = &fv
	}
	if s.Prediction != nil {
		p := *s.Prediction
		p.Probabilities = append([]float64(nil), s.Prediction.Probabilities...)
		c.Prediction = &p
	}
	c.Logs = append([]model.EventLogEntry{}, s.Logs...)
	return &c
}

func (s *State) requireDanger() error {
	if s.Prediction == nil {
		return ErrNoPrediction
	}
	if s.Prediction.Label != model.LabelDanger {
		return fmt.Errorf("%w: current label is %s", ErrNotInDanger, s.Prediction.Label)
	}
	return nil
}

func (s *State) log(t model.EventType, details string) error {
	e, err := model.NewEventLogEntry(s.now(), t, details)
	if err != nil {
		return err
	}
	s.Logs = append(s.Logs, e)
	if over := len(s.Logs) - s.maxLogs; over > 0 {
		s.Logs = append([]model.EventLogEntry{}, s.Logs[over:]...)
	}
	s.UpdatedAt = e.Timestamp
	return nil
}

func (s *State) touch() { s.UpdatedAt = s.now() }

func scenarioDetails(sc model.Scenario) string {
	switch sc {
	case model.ScenarioNormal:
		return "Normal activity selected"
	case model.ScenarioPlaying:
		return "Playing activity selected"
	case model.ScenarioDanger:
		return "Danger scenario selected"
	}
	return sc.String() + " scenario selected"
}
