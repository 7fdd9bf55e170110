package features

import "errors"

// Sentinel kinds for feature extraction errors.
var (
	ErrEmptyWindow = errors.New("empty sensor window")
)
