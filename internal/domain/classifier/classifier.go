// Package classifier turns feature vectors into labelled predictions.
//
// Any three-class probabilistic model can back the Adapter as long as it
// exposes a label prediction and a per-class probability vector.
package classifier

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/okian/swiri/internal/domain/model"
)

// probabilityTolerance absorbs float rounding in probability vectors.
const probabilityTolerance = 1e-9

// Model is the contract of a loaded classifier artifact.
type Model interface {
	// PredictLabel returns the raw class code for x.
	PredictLabel(x []float64) (int, error)
	// PredictProbabilities returns one probability per class, indexed by code.
	PredictProbabilities(x []float64) ([]float64, error)
}

// Option applies a configuration option to the Adapter.
type Option func(*Adapter)

// WithClock overrides the clock used to stamp predictions.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		if now != nil {
			a.now = now
		}
	}
}

// Adapter maps a Model's raw outputs onto model.Prediction.
type Adapter struct {
	model Model
	now   func() time.Time
}

// NewAdapter wraps m. m must be non-nil; use Load to obtain one.
func NewAdapter(m Model, opts ...Option) (*Adapter, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", ErrModelUnavailable)
	}
	a := &Adapter{model: m, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Predict classifies fv. The label comes from the model's own argmax and
// confidence is 100 x the largest class probability.
func (a *Adapter) Predict(ctx context.Context, fv model.FeatureVector) (model.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return model.Prediction{}, fmt.Errorf("predict cancelled: %w", err)
	}
	x := fv.Slice()
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.Prediction{}, fmt.Errorf("%w: feature %d is %v", ErrInvalidInput, i, v)
		}
	}

	code, err := a.model.PredictLabel(x)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("predict label: %w", err)
	}
	label, err := model.LabelFromCode(code)
	if err != nil {
		return model.Prediction{}, err
	}

	probs, err := a.model.PredictProbabilities(x)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("predict probabilities: %w", err)
	}
	best, err := maxProbability(probs)
	if err != nil {
		return model.Prediction{}, err
	}

	return model.Prediction{
		Label:         label,
		Code:          code,
		Confidence:    math.Min(100, best*100),
		Probabilities: append([]float64(nil), probs...),
		PredictedAt:   a.now(),
	}, nil
}

func maxProbability(probs []float64) (float64, error) {
	if len(probs) != model.NumLabels {
		return 0, fmt.Errorf("%w: got %d probabilities, want %d", ErrInvalidOutput, len(probs), model.NumLabels)
	}
	best := 0.0
	for i, p := range probs {
		if math.IsNaN(p) || p < 0 || p > 1+probabilityTolerance {
			return 0, fmt.Errorf("%w: probability %d is %v", ErrInvalidOutput, i, p)
		}
		if p > best {
			best = p
		}
	}
	return best, nil
}
