// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Scenario selects the activity context used to synthesize sensor data.
type Scenario int

// Known scenarios. The zero value means no scenario has been chosen.
const (
	ScenarioNone Scenario = iota
	ScenarioNormal
	ScenarioPlaying
	ScenarioDanger
)

// Scenarios lists every selectable scenario in display order.
var Scenarios = []Scenario{ScenarioNormal, ScenarioPlaying, ScenarioDanger}

// ParseScenario maps a scenario name (case-insensitive) to a Scenario.
func ParseScenario(s string) (Scenario, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NORMAL":
		return ScenarioNormal, nil
	case "PLAYING":
		return ScenarioPlaying, nil
	case "DANGER":
		return ScenarioDanger, nil
	}
	return ScenarioNone, fmt.Errorf("%w: %q", ErrInvalidScenario, s)
}

// Valid reports whether s is one of the selectable scenarios.
func (s Scenario) Valid() bool {
	return s == ScenarioNormal || s == ScenarioPlaying || s == ScenarioDanger
}

// Label returns the classifier label a window of this scenario is expected
// to receive.
func (s Scenario) Label() (Label, bool) {
	switch s {
	case ScenarioNormal:
		return LabelNormal, true
	case ScenarioPlaying:
		return LabelPlaying, true
	case ScenarioDanger:
		return LabelDanger, true
	}
	return 0, false
}

func (s Scenario) String() string {
	switch s {
	case ScenarioNormal:
		return "NORMAL"
	case ScenarioPlaying:
		return "PLAYING"
	case ScenarioDanger:
		return "DANGER"
	case ScenarioNone:
		return "NONE"
	}
	return fmt.Sprintf("Scenario(%d)", int(s))
}

// MarshalText encodes the scenario by name.
func (s Scenario) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a scenario name. "NONE" and "" decode to ScenarioNone.
func (s *Scenario) UnmarshalText(b []byte) error {
	name := strings.ToUpper(strings.TrimSpace(string(b)))
	if name == "" || name == "NONE" {
		*s = ScenarioNone
		return nil
	}
	v, err := ParseScenario(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
