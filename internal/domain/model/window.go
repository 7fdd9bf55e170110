package model

import "time"

// Window geometry: 5 seconds sampled at 10 Hz.
const (
	WindowSize       = 50
	SampleRateHz     = 10
	WindowDurationMS = WindowSize * 1000 / SampleRateHz
)

// SensorWindow is one fixed batch of heart-rate and accelerometer samples.
// It is not mutated after creation; use Clone before handing it to code
// that might.
type SensorWindow struct {
	Scenario      Scenario  `json:"scenario"`
	HeartRate     []float64 `json:"heart_rate"`
	Accelerometer []float64 `json:"accelerometer"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// Clone returns a deep copy of w.
func (w SensorWindow) Clone() SensorWindow {
	c := w
	c.HeartRate = append([]float64(nil), w.HeartRate...)
	c.Accelerometer = append([]float64(nil), w.Accelerometer...)
	return c
}

// Empty reports whether either sequence has no samples.
func (w SensorWindow) Empty() bool {
	return len(w.HeartRate) == 0 || len(w.Accelerometer) == 0
}

// FeatureVector is the 4-scalar summary of a window fed to the classifier.
// HRGradient is last-minus-first heart rate, not a slope.
type FeatureVector struct {
	HRMean      float64 `json:"hr_mean"`
	HRGradient  float64 `json:"hr_gradient"`
	AccMean     float64 `json:"acc_mean"`
	AccVariance float64 `json:"acc_variance"`
}

// NumFeatures is the length of FeatureVector.Slice.
const NumFeatures = 4

// Slice returns the features in classifier input order.
func (f FeatureVector) Slice() []float64 {
	return []float64{f.HRMean, f.HRGradient, f.AccMean, f.AccVariance}
}

// Prediction is the result of one classifier invocation.
type Prediction struct {
	Label         Label     `json:"label"`
	Code          int       `json:"code"`
	Confidence    float64   `json:"confidence"`
	Probabilities []float64 `json:"probabilities"`
	PredictedAt   time.Time `json:"predicted_at"`
}
