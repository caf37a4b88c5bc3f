package domain

import "errors"

var (
	// ErrNotFound means no week matches the requested id or date.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput covers malformed URLs and missing or out-of-range fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable wraps failures of the tabular store or metadata API.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedRecord marks a stored row that cannot be decoded.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrConflict means another week already holds the service date.
	ErrConflict = errors.New("conflict")
)
