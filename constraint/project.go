package constraint

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/matrix"
)

// correction returns the Newton update dx for iterate y with residual f.
type correction func(y, f []float64) ([]float64, error)

// Project maps x onto the manifold by minimum-norm Newton iteration
//
//	x ← x − Jᵀ(JJᵀ)⁻¹F(x)
//
// until ‖F(x)‖ ≤ tolerance. The input is never modified; a point already
// within tolerance is returned as an unchanged copy.
//
// Failure (always a *ProjectionError matching ErrProjectionDivergence):
//   - iteration cap reached (cause ErrIterationLimit);
//   - residual grew DivergenceWindow times in a row (cause ErrResidualGrowth);
//   - JJᵀ singular (cause ErrSingularJacobian wrapping matrix.ErrSingular);
//   - NaN/Inf in F or J (cause ErrNonFinite).
//
// Complexity: O(iter · (k²n + k³)).
func (c *Constraint) Project(x []float64) ([]float64, error) {
	if err := c.checkLen("Project", x); err != nil {
		return nil, err
	}

	return c.newton(x, c.minNormStep)
}

// ProjectAlong retracts x onto the manifold moving only within the affine
// subspace x + span(N), where N is n×k:
//
//	x ← x − N(J·N)⁻¹F(x)
//
// With N the normal basis of a chart this is the inverse of the chart's
// orthogonal tangent projection: the tangent coordinates of x are preserved.
// Failure modes match Project; J·N singular means span(N) is tangent to the
// manifold somewhere along the way.
func (c *Constraint) ProjectAlong(x []float64, N *matrix.Dense) ([]float64, error) {
	if err := c.checkLen("ProjectAlong", x); err != nil {
		return nil, err
	}
	if N == nil || N.Rows() != c.n || N.Cols() != c.k {
		return nil, fmt.Errorf("constraint: ProjectAlong: basis must be %d×%d: %w", c.n, c.k, ErrDimensionMismatch)
	}

	return c.newton(x, func(y, f []float64) ([]float64, error) {
		J, err := c.JacobianAt(y)
		if err != nil {
			return nil, err
		}
		JN, err := matrix.Mul(J, N)
		if err != nil {
			return nil, err
		}
		lambda, err := matrix.Solve(JN, f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSingularJacobian, err)
		}

		return matrix.MatVec(N, lambda)
	})
}

// newton runs the shared capped iteration y ← y − step(y, F(y)).
func (c *Constraint) newton(x []float64, step correction) ([]float64, error) {
	y := make([]float64, c.n)
	copy(y, x)
	f := make([]float64, c.k)
	c.fn.Evaluate(y, f)
	norm := floats.Norm(f, 2)

	var (
		iter   int
		growth int
		prev   = norm
	)
	for norm > c.opts.tolerance || math.IsNaN(norm) {
		if math.IsNaN(norm) || math.IsInf(norm, 0) {
			return nil, c.fail(iter, norm, ErrNonFinite)
		}
		if iter >= c.opts.maxIterations {
			return nil, c.fail(iter, norm, ErrIterationLimit)
		}

		dx, err := step(y, f)
		if err != nil {
			return nil, c.fail(iter, norm, err)
		}
		floats.Sub(y, dx)
		iter++

		c.fn.Evaluate(y, f)
		norm = floats.Norm(f, 2)
		if norm > prev {
			growth++
			if growth >= c.opts.divergenceWindow {
				return nil, c.fail(iter, norm, ErrResidualGrowth)
			}
		} else {
			growth = 0
		}
		prev = norm
	}

	c.opts.recorder.ObserveProjection(iter, nil)

	return y, nil
}

// minNormStep returns Jᵀ(JJᵀ)⁻¹f at y.
func (c *Constraint) minNormStep(y, f []float64) ([]float64, error) {
	J, err := c.JacobianAt(y)
	if err != nil {
		return nil, err
	}
	G, err := matrix.Gram(J)
	if err != nil {
		return nil, err
	}
	lambda, err := matrix.Solve(G, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingularJacobian, err)
	}

	return matrix.MatTVec(J, lambda)
}

func (c *Constraint) fail(iter int, residual float64, cause error) error {
	err := &ProjectionError{Iterations: iter, Residual: residual, Cause: cause}
	c.opts.recorder.ObserveProjection(iter, err)

	return err
}
