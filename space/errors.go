package space

import (
	"errors"
	"fmt"
)

var (
	// ErrNilConstraint indicates a space built without a constraint.
	ErrNilConstraint = errors.New("space: nil constraint")

	// ErrDimensionMismatch indicates bounds or states whose length differs
	// from the constraint's ambient dimension.
	ErrDimensionMismatch = errors.New("space: dimension mismatch")

	// ErrInvalidBounds indicates lo[i] > hi[i] for some coordinate.
	ErrInvalidBounds = errors.New("space: invalid bounds")

	// ErrUnknownKind indicates an unrecognised space kind name.
	ErrUnknownKind = errors.New("space: unknown kind")

	// ErrNoValidSample indicates sampling retries were exhausted.
	ErrNoValidSample = errors.New("space: no valid sample found")

	// ErrDivergentStep indicates a traversal step landed further than the
	// curvature-consistency threshold allows, or made no progress.
	ErrDivergentStep = errors.New("space: divergent step")

	// ErrEmptyPath indicates ExpandPath was given no waypoints.
	ErrEmptyPath = errors.New("space: empty path")
)

// TraversalError reports a failed traversal step. The Motion returned
// alongside it holds the states validated before Step.
type TraversalError struct {
	Step int        // 1-based index of the failing step
	Stop StopReason // always StopError today
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("space: traversal step %d: %v", e.Step, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }
