package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType classifies an audit log entry.
type EventType string

// Event types written by the session workflow.
const (
	EventScenario     EventType = "SCENARIO"
	EventAIProcessing EventType = "AI_PROCESSING"
	EventCamera       EventType = "CAMERA"
	EventConfirmation EventType = "CONFIRMATION"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventScenario, EventAIProcessing, EventCamera, EventConfirmation:
		return true
	}
	return false
}

// EventLogEntry is one append-only audit record.
type EventLogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Details   string    `json:"details"`
}

// NewEventLogEntry stamps a new entry with a fresh id.
func NewEventLogEntry(ts time.Time, t EventType, details string) (EventLogEntry, error) {
	if !t.Valid() {
		return EventLogEntry{}, fmt.Errorf("%w: %q", ErrInvalidEvent, t)
	}
	return EventLogEntry{
		ID:        uuid.NewString(),
		Timestamp: ts,
		Type:      t,
		Details:   details,
	}, nil
}
