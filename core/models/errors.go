package models

import "errors"

// Validation and lookup errors surfaced synchronously to callers.
var (
	// ErrUnknownAlgorithm is returned by submit when the requested
	// algorithm has no stage plan registered.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrInvalidTrainingData is returned by submit when the dataset
	// reference is missing or carries no rows.
	ErrInvalidTrainingData = errors.New("invalid training data")

	// ErrJobNotFound is returned for lookups of unknown job ids.
	ErrJobNotFound = errors.New("job not found")

	// ErrModelNotFound is returned for lookups of unknown model ids.
	ErrModelNotFound = errors.New("model not found")

	// ErrJobNotQueued is returned by cancel for jobs that already left
	// the queue; mid-training cancellation is not supported.
	ErrJobNotQueued = errors.New("job is not queued; cancellation is only supported for queued jobs")
)
