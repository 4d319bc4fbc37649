package life

import "errors"

// Domain errors for board and controller operations.
var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("life: width and height must be positive")

	// ErrInvalidProbability indicates a probability outside [0, 1].
	ErrInvalidProbability = errors.New("life: probability must be in [0, 1]")

	// ErrUnknownPattern indicates a pattern name with no library entry.
	ErrUnknownPattern = errors.New("life: unknown pattern")

	// ErrBusy indicates a board mutation attempted while the run loop is active.
	ErrBusy = errors.New("life: operation not permitted while running")
)
