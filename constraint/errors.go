package constraint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates a Function with k ≤ 0, n ≤ 0 or k ≥ n.
	ErrInvalidDimensions = errors.New("constraint: invalid ambient/co-dimension")

	// ErrDimensionMismatch indicates a point whose length differs from the ambient dimension.
	ErrDimensionMismatch = errors.New("constraint: dimension mismatch")

	// ErrProjectionDivergence indicates Newton projection failed to reach the tolerance.
	ErrProjectionDivergence = errors.New("constraint: projection diverged")

	// ErrIterationLimit is the cause when the Newton iteration cap is reached.
	ErrIterationLimit = errors.New("constraint: iteration limit reached")

	// ErrResidualGrowth is the cause when the residual grew for DivergenceWindow consecutive steps.
	ErrResidualGrowth = errors.New("constraint: residual kept growing")

	// ErrSingularJacobian indicates a rank-deficient Jacobian at the evaluation point.
	ErrSingularJacobian = errors.New("constraint: singular jacobian")

	// ErrNonFinite indicates the residual or Jacobian produced NaN or ±Inf.
	ErrNonFinite = errors.New("constraint: non-finite value")
)

// ProjectionError describes a failed projection. It matches both
// ErrProjectionDivergence and its Cause under errors.Is.
type ProjectionError struct {
	Iterations int     // Newton steps taken before giving up
	Residual   float64 // ‖F(x)‖ at the last iterate
	Cause      error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("constraint: projection diverged after %d iterations (residual %g): %v",
		e.Iterations, e.Residual, e.Cause)
}

func (e *ProjectionError) Unwrap() []error {
	return []error{ErrProjectionDivergence, e.Cause}
}
