package session

import "errors"

// Sentinel kinds for session workflow errors.
var (
	ErrNoWindow             = errors.New("no sensor window generated")
	ErrNoPrediction         = errors.New("no prediction available")
	ErrNotInDanger          = errors.New("no danger alert to act on")
	ErrInvalidConfirmation  = errors.New("invalid confirmation outcome")
	ErrClassifierNotDefined = errors.New("no classifier available")
)
