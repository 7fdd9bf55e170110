package session

import "github.com/okian/swiri/internal/domain/model"

// Level is the alert level shown to the parent.
type Level string

// Alert levels.
const (
	LevelIdle     Level = "IDLE"
	LevelSafe     Level = "SAFE"
	LevelActive   Level = "ACTIVE"
	LevelHighRisk Level = "HIGH_RISK"
)

// Watch colours.
const (
	ColorIdle    = "#1E3A8A"
	ColorSafe    = "#10B981"
	ColorActive  = "#F59E0B"
	ColorDanger  = "#EF4444"
	colorDefault = "#6B7280"
)

// Status is the banner derived from the latest prediction.
type Status struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Color   string `json:"color"`
	Alarm   bool   `json:"alarm"`
}

// StatusFor maps a prediction (nil for none yet) to its banner.
func StatusFor(p *model.Prediction) Status {
	if p == nil {
		return Status{Level: LevelIdle, Message: "No prediction available", Color: ColorIdle}
	}
	switch p.Label {
	case model.LabelNormal:
		return Status{Level: LevelSafe, Message: "Child Status: SAFE - Normal Activity Detected", Color: ColorSafe}
	case model.LabelPlaying:
		return Status{Level: LevelActive, Message: "Child Status: High Physical Activity - Playing", Color: ColorActive}
	case model.LabelDanger:
		return Status{Level: LevelHighRisk, Message: "HIGH RISK DETECTED - Immediate Attention Required", Color: ColorDanger, Alarm: true}
	}
	return Status{Level: LevelIdle, Message: "Unrecognised prediction", Color: ColorIdle}
}

// LogColor is the accent colour used when listing an entry of type t.
func LogColor(t model.EventType) string {
	switch t {
	case model.EventScenario:
		return "#1E3A8A"
	case model.EventAIProcessing:
		return "#059669"
	case model.EventCamera:
		return "#7C3AED"
	case model.EventConfirmation:
		return "#D97706"
	}
	return colorDefault
}
