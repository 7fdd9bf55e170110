package api

import (
	"time"

	"github.com/okian/swiri/internal/domain/features"
	"github.com/okian/swiri/internal/domain/model"
	"github.com/okian/swiri/internal/domain/session"
)

// sessionView is the JSON shape of a session returned to clients.
type sessionView struct {
	ID             string               `json:"id"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	Scenario       model.Scenario       `json:"scenario"`
	Location       string               `json:"location"`
	Window         *windowView          `json:"window,omitempty"`
	Features       *model.FeatureVector `json:"features,omitempty"`
	Prediction     *model.Prediction    `json:"prediction,omitempty"`
	Status         session.Status       `json:"status"`
	ImageCaptured  bool                 `json:"image_captured"`
	Confirmation   session.Confirmation `json:"confirmation"`
	AlertTriggered bool                 `json:"alert_triggered"`
	Stats          session.LogStats     `json:"stats"`
	Logs           []logView            `json:"logs"`
}

type windowView struct {
	Scenario          model.Scenario         `json:"scenario"`
	GeneratedAt       time.Time              `json:"generated_at"`
	SampleRateHz      int                    `json:"sample_rate_hz"`
	HeartRate         []float64              `json:"heart_rate"`
	Accelerometer     []float64              `json:"accelerometer"`
	HeartRateTail     []float64              `json:"heart_rate_tail"`
	AccelerometerTail []float64              `json:"accelerometer_tail"`
	Summary           features.WindowSummary `json:"summary"`
}

type logView struct {
	model.EventLogEntry
	Color string `json:"color"`
}

type logsView struct {
	Logs  []logView        `json:"logs"`
	Stats session.LogStats `json:"stats"`
}

func newSessionView(st *session.State, chartTail int) sessionView {
	v := sessionView{
		ID:             st.ID,
		CreatedAt:      st.CreatedAt,
		UpdatedAt:      st.UpdatedAt,
		Scenario:       st.Scenario,
		Location:       st.Location,
		Features:       st.Features,
		Prediction:     st.Prediction,
		Status:         session.StatusFor(st.Prediction),
		ImageCaptured:  st.ImageCaptured,
		Confirmation:   st.Confirmation,
		AlertTriggered: st.AlertTriggered,
		Stats:          st.Stats(),
		Logs:           newLogViews(st.Logs),
	}
	if st.Window != nil {
		w := st.Window
		v.Window = &windowView{
			Scenario:          w.Scenario,
			GeneratedAt:       w.GeneratedAt,
			SampleRateHz:      model.SampleRateHz,
			HeartRate:         w.HeartRate,
			Accelerometer:     w.Accelerometer,
			HeartRateTail:     features.Tail(w.HeartRate, chartTail),
			AccelerometerTail: features.Tail(w.Accelerometer, chartTail),
			Summary:           features.Summarize(*w),
		}
	}
	return v
}

// newLogViews returns entries newest first, each with its display colour.
func newLogViews(entries []model.EventLogEntry) []logView {
	out := make([]logView, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, logView{EventLogEntry: entries[i], Color: session.LogColor(entries[i].Type)})
	}
	return out
}
