package session

import (
	"strings"

	"github.com/okian/swiri/internal/domain/model"
)

// LogStats summarises a session's event log.
type LogStats struct {
	TotalEvents   int `json:"total_events"`
	ScenariosRun  int `json:"scenarios_run"`
	DangerAlerts  int `json:"danger_alerts"`
	Confirmations int `json:"confirmations"`
}

// Stats counts the entries in the event log. Danger alerts are entries
// whose details contain the upper-case label DANGER, i.e. predictions.
func (s *State) Stats() LogStats {
	st := LogStats{TotalEvents: len(s.Logs)}
	for _, e := range s.Logs {
		switch e.Type {
		case model.EventScenario:
			st.ScenariosRun++
		case model.EventConfirmation:
			st.Confirmations++
		}
		if strings.Contains(e.Details, dangerLogMarker) {
			st.DangerAlerts++
		}
	}
	return st
}
