package qrng

import "errors"

// Error kinds surfaced by the sampling-and-selection pipeline. Callers
// distinguish them with errors.Is; every wrapping site keeps the kind
// intact via %w.
var (
	// ErrInvalidArgument - the requested outcome range or shot count is not positive
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBackendUnavailable - the executor could not be reached or the session is invalid
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrExecutionFailed - the backend rejected or aborted a submitted job
	ErrExecutionFailed = errors.New("execution failed")

	// ErrDegenerateDistribution - mean occurrence count is zero, spread is undefined
	ErrDegenerateDistribution = errors.New("degenerate distribution")

	// ErrNoValidOutcomes - every measured outcome fell outside the requested range
	ErrNoValidOutcomes = errors.New("no valid outcomes")
)
