package model

import "errors"

// Sentinel kinds for domain model errors.
var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrUnknownLabel    = errors.New("unknown label")
	ErrInvalidEvent    = errors.New("invalid event type")
)
