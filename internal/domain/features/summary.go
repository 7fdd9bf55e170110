package features

import "github.com/okian/swiri/internal/domain/model"

// SeriesSummary describes one sequence for display.
type SeriesSummary struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Current float64 `json:"current"`
}

// WindowSummary holds the display summaries of both sequences.
type WindowSummary struct {
	HeartRate     SeriesSummary `json:"heart_rate"`
	Accelerometer SeriesSummary `json:"accelerometer"`
}

// Summarize returns min/max/mean/latest for each sequence of w. Empty
// sequences summarise to zeros.
func Summarize(w model.SensorWindow) WindowSummary {
	return WindowSummary{
		HeartRate:     summarizeSeries(w.HeartRate),
		Accelerometer: summarizeSeries(w.Accelerometer),
	}
}

func summarizeSeries(xs []float64) SeriesSummary {
	if len(xs) == 0 {
		return SeriesSummary{}
	}
	s := SeriesSummary{Min: xs[0], Max: xs[0], Mean: Mean(xs), Current: xs[len(xs)-1]}
	for _, x := range xs[1:] {
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	return s
}

// Tail returns at most the last n samples of xs as a new slice.
func Tail(xs []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(xs) > n {
		xs = xs[len(xs)-n:]
	}
	return append([]float64(nil), xs...)
}
