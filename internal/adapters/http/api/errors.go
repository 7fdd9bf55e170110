package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/swiri/internal/adapters/repository"
	"github.com/okian/swiri/internal/domain/classifier"
	"github.com/okian/swiri/internal/domain/features"
	"github.com/okian/swiri/internal/domain/model"
	"github.com/okian/swiri/internal/domain/session"
)

// Sentinel kinds for API errors.
var (
	ErrServe      = errors.New("http serve failed")
	ErrBadRequest = errors.New("bad request")
)

// OpError tags an error with the API operation that produced it and a
// sentinel kind. errors.Is matches both the kind and the wrapped cause.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

// NewKind returns an OpError without an underlying cause.
func NewKind(op string, kind error) *OpError {
	return &OpError{Op: op, Kind: kind}
}

// WrapKind returns an OpError wrapping err.
func WrapKind(op string, kind error, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Err: err}
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// errorMapping pairs a sentinel with its HTTP status and stable code.
type errorMapping struct {
	kind   error
	status int
	code   string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{ErrBadRequest, http.StatusBadRequest, "bad_request"},
	{model.ErrInvalidScenario, http.StatusBadRequest, "invalid_scenario"},
	{session.ErrInvalidConfirmation, http.StatusBadRequest, "invalid_confirmation"},
	{repository.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
	{session.ErrNoWindow, http.StatusConflict, "no_window"},
	{session.ErrNoPrediction, http.StatusConflict, "no_prediction"},
	{session.ErrNotInDanger, http.StatusConflict, "not_in_danger"},
	{features.ErrEmptyWindow, http.StatusUnprocessableEntity, "empty_window"},
	{classifier.ErrModelUnavailable, http.StatusServiceUnavailable, "model_unavailable"},
	{session.ErrClassifierNotDefined, http.StatusServiceUnavailable, "model_unavailable"},
	{model.ErrUnknownLabel, http.StatusInternalServerError, "unknown_label"},
	{classifier.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input"},
	{classifier.ErrInvalidOutput, http.StatusInternalServerError, "invalid_output"},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, "timeout"},
	{context.Canceled, http.StatusServiceUnavailable, "canceled"},
}

// statusFor maps err to an HTTP status and error code.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}
