// Package sensor synthesizes wearable sensor windows for demo scenarios.
//
// Windows are drawn from a time-seeded source by default, so two calls for
// the same scenario return different data. Inject a seeded source with
// WithSeed or WithSource when reproducible output is needed.
package sensor

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/swiri/internal/domain/model"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSource sets the random source. Nil is ignored.
func WithSource(src rand.Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.rng = rand.New(src) //nolint:gosec // simulation data, not security sensitive
		}
	}
}

// WithSeed seeds the random source with a fixed value.
func WithSeed(seed int64) Option {
	return WithSource(rand.NewSource(seed))
}

// WithClock overrides the clock used to stamp windows.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithWindowSize changes the number of samples per sequence.
func WithWindowSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.size = n
		}
	}
}

// Generator produces synthetic SensorWindows.
type Generator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	now  func() time.Time
	size int
}

// New creates a generator seeded from the wall clock unless an option
// overrides the source.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // simulation data
		now:  time.Now,
		size: model.WindowSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a fresh window for scenario s.
func (g *Generator) Generate(ctx context.Context, s model.Scenario) (model.SensorWindow, error) {
	if err := ctx.Err(); err != nil {
		return model.SensorWindow{}, fmt.Errorf("generate cancelled: %w", err)
	}
	p, ok := ProfileFor(s)
	if !ok {
		return model.SensorWindow{}, fmt.Errorf("%w: %s", model.ErrInvalidScenario, s)
	}

	g.mu.Lock()
	hr := g.heartRate(p)
	acc := g.accelerometer(p)
	g.mu.Unlock()

	return model.SensorWindow{
		Scenario:      s,
		HeartRate:     hr,
		Accelerometer: acc,
		GeneratedAt:   g.now(),
	}, nil
}

// heartRate draws base + trend noise + linear ramp + measurement noise,
// clamped into the profile range. Caller holds g.mu.
func (g *Generator) heartRate(p Profile) []float64 {
	ramp := linspace(0, p.HRRamp, g.size)
	out := make([]float64, g.size)
	for i := range out {
		trend := g.rng.NormFloat64()*p.HRTrendSigma + ramp[i]
		v := p.HRBase + trend + g.rng.NormFloat64()*measurementNoiseSigma
		out[i] = clamp(v, p.HRMin, p.HRMax)
	}
	return out
}

// accelerometer draws base + gaussian noise clamped to [0,10]. Caller holds g.mu.
func (g *Generator) accelerometer(p Profile) []float64 {
	out := make([]float64, g.size)
	for i := range out {
		out[i] = clamp(p.AccBase+g.rng.NormFloat64()*p.AccSigma, accMin, accMax)
	}
	return out
}

// linspace returns n evenly spaced values from start to end inclusive.
func linspace(start, end float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
