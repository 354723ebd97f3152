package httpmetrics

import "errors"

var (
	// ErrInvalidConfig is returned by NewRecorder for unusable configurations.
	ErrInvalidConfig = errors.New("invalid httpmetrics configuration")

	// errServerError is reported to observers for 5xx responses.
	errServerError = errors.New("server error response")
)
