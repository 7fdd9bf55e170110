// Package features reduces a sensor window to the classifier feature vector.
package features

import (
	"fmt"

	"github.com/okian/swiri/internal/domain/model"
)

// Extract computes the feature vector for w. It is pure: the same window
// always yields a bit-identical vector.
//
// HRGradient is the last heart-rate sample minus the first. The trained
// model depends on this exact definition, so it is not divided by the
// window duration.
func Extract(w model.SensorWindow) (model.FeatureVector, error) {
	if len(w.HeartRate) == 0 {
		return model.FeatureVector{}, fmt.Errorf("%w: no heart-rate samples", ErrEmptyWindow)
	}
	if len(w.Accelerometer) == 0 {
		return model.FeatureVector{}, fmt.Errorf("%w: no accelerometer samples", ErrEmptyWindow)
	}

	accMean := Mean(w.Accelerometer)
	return model.FeatureVector{
		HRMean:      Mean(w.HeartRate),
		HRGradient:  w.HeartRate[len(w.HeartRate)-1] - w.HeartRate[0],
		AccMean:     accMean,
		AccVariance: variance(w.Accelerometer, accMean),
	}, nil
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Variance returns the population variance (divide by N) of xs.
func Variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return variance(xs, Mean(xs))
}

func variance(xs []float64, mean float64) float64 {
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss / float64(len(xs))
}
