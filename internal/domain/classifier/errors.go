package classifier

import (
	"errors"

	"github.com/okian/swiri/internal/domain/model"
)

// Sentinel kinds for classifier errors.
var (
	ErrModelUnavailable = errors.New("model unavailable")
	ErrInvalidModel     = errors.New("invalid model artifact")
	ErrInvalidInput     = errors.New("invalid feature input")
	ErrInvalidOutput    = errors.New("invalid model output")
	// ErrUnknownLabel is shared with the model package so callers can match
	// either name.
	ErrUnknownLabel = model.ErrUnknownLabel
)
