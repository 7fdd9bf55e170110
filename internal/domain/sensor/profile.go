package sensor

import "github.com/okian/swiri/internal/domain/model"

// Accelerometer magnitude bounds shared by every scenario.
const (
	accMin = 0.0
	accMax = 10.0
)

// measurementNoiseSigma is the independent per-sample heart-rate noise added
// on top of the scenario trend.
const measurementNoiseSigma = 2.0

// Profile holds the synthesis parameters for one scenario.
type Profile struct {
	HRBase       float64
	HRMin        float64
	HRMax        float64
	HRTrendSigma float64
	// HRRamp is the end value of a linear 0->HRRamp drift across the window.
	HRRamp   float64
	AccBase  float64
	AccSigma float64
}

// defaultProfiles must stay in step with the classifier artifact: the
// trained decision surface assumes these ranges.
var defaultProfiles = map[model.Scenario]Profile{
	model.ScenarioNormal: {
		HRBase: 85, HRMin: 80, HRMax: 95,
		HRTrendSigma: 0.5, HRRamp: 0,
		AccBase: 0.5, AccSigma: 0.1,
	},
	model.ScenarioPlaying: {
		HRBase: 110, HRMin: 100, HRMax: 120,
		HRTrendSigma: 1, HRRamp: 5,
		AccBase: 2.0, AccSigma: 0.5,
	},
	model.ScenarioDanger: {
		HRBase: 145, HRMin: 130, HRMax: 160,
		HRTrendSigma: 2, HRRamp: 15,
		AccBase: 4.0, AccSigma: 1.5,
	},
}

// ProfileFor returns the built-in profile for s.
func ProfileFor(s model.Scenario) (Profile, bool) {
	p, ok := defaultProfiles[s]
	return p, ok
}

// AccRange returns the closed accelerometer clamp range.
func AccRange() (float64, float64) { return accMin, accMax }
