package service

import (
	"context"
	"errors"

	"github.com/okian/swiri/internal/adapters/repository"
	"github.com/okian/swiri/internal/domain/classifier"
	"github.com/okian/swiri/internal/domain/features"
	"github.com/okian/swiri/internal/domain/model"
	"github.com/okian/swiri/internal/domain/session"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
)

// Error kinds reported by ErrorKind.
const (
	KindInvalidScenario     = "invalid_scenario"
	KindEmptyWindow         = "empty_window"
	KindModelUnavailable    = "model_unavailable"
	KindUnknownLabel        = "unknown_label"
	KindInvalidInput        = "invalid_input"
	KindInvalidOutput       = "invalid_output"
	KindNoWindow            = "no_window"
	KindNoPrediction        = "no_prediction"
	KindNotInDanger         = "not_in_danger"
	KindInvalidConfirmation = "invalid_confirmation"
	KindSessionNotFound     = "session_not_found"
	KindNotStarted          = "not_started"
	KindCanceled            = "canceled"
	KindInternal            = "internal"
)

// ErrorKind classifies err into a stable kind string for metrics and API
// error codes.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrInvalidScenario):
		return KindInvalidScenario
	case errors.Is(err, features.ErrEmptyWindow):
		return KindEmptyWindow
	case errors.Is(err, classifier.ErrModelUnavailable), errors.Is(err, session.ErrClassifierNotDefined):
		return KindModelUnavailable
	case errors.Is(err, model.ErrUnknownLabel):
		return KindUnknownLabel
	case errors.Is(err, classifier.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, classifier.ErrInvalidOutput):
		return KindInvalidOutput
	case errors.Is(err, session.ErrNoWindow):
		return KindNoWindow
	case errors.Is(err, session.ErrNoPrediction):
		return KindNoPrediction
	case errors.Is(err, session.ErrNotInDanger):
		return KindNotInDanger
	case errors.Is(err, session.ErrInvalidConfirmation):
		return KindInvalidConfirmation
	case errors.Is(err, repository.ErrSessionNotFound):
		return KindSessionNotFound
	case errors.Is(err, ErrNotStarted):
		return KindNotStarted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	}
	return KindInternal
}
