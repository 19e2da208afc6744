// SPDX-License-Identifier: MIT

package constraint

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/matrix"
)

// Constraint binds a Function to the numeric policy used to project onto and
// linearise the manifold {x : F(x) = 0}.
type Constraint struct {
	fn   Function
	n, k int
	opts Options
}

// New validates fn and returns a Constraint.
// It fails with ErrInvalidDimensions unless 0 < k < n.
func New(fn Function, opts ...Option) (*Constraint, error) {
	if fn == nil {
		return nil, fmt.Errorf("constraint: New: nil function: %w", ErrInvalidDimensions)
	}
	n, k := fn.AmbientDimension(), fn.CoDimension()
	if n <= 0 || k <= 0 || k >= n {
		return nil, fmt.Errorf("constraint: New: n=%d k=%d: %w", n, k, ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)
	if f, ok := fn.(Funcs); ok && f.J == nil && f.Step == 0 {
		f.Step = o.fdStep
		fn = f
	}

	return &Constraint{fn: fn, n: n, k: k, opts: o}, nil
}

// AmbientDimension returns n.
func (c *Constraint) AmbientDimension() int { return c.n }

// CoDimension returns k.
func (c *Constraint) CoDimension() int { return c.k }

// ManifoldDimension returns d = n − k.
func (c *Constraint) ManifoldDimension() int { return c.n - c.k }

// Tolerance returns the residual norm accepted as satisfied.
func (c *Constraint) Tolerance() float64 { return c.opts.tolerance }

// Function returns the wrapped constraint function.
func (c *Constraint) Function() Function { return c.fn }

func (c *Constraint) checkLen(op string, x []float64) error {
	if len(x) != c.n {
		return fmt.Errorf("constraint: %s: len(x)=%d, want %d: %w", op, len(x), c.n, ErrDimensionMismatch)
	}

	return nil
}

// Residual returns F(x).
func (c *Constraint) Residual(x []float64) ([]float64, error) {
	if err := c.checkLen("Residual", x); err != nil {
		return nil, err
	}
	out := make([]float64, c.k)
	c.fn.Evaluate(x, out)

	return out, nil
}

// ResidualNorm returns ‖F(x)‖₂, or +Inf when x has the wrong length.
func (c *Constraint) ResidualNorm(x []float64) float64 {
	f, err := c.Residual(x)
	if err != nil {
		return math.Inf(1)
	}

	return floats.Norm(f, 2)
}

// IsSatisfied reports whether ‖F(x)‖ ≤ tolerance.
func (c *Constraint) IsSatisfied(x []float64) bool {
	return c.ResidualNorm(x) <= c.opts.tolerance
}

// JacobianAt evaluates the k×n Jacobian at x.
func (c *Constraint) JacobianAt(x []float64) (*matrix.Dense, error) {
	if err := c.checkLen("JacobianAt", x); err != nil {
		return nil, err
	}
	buf := make([]float64, c.k*c.n)
	c.fn.Jacobian(x, buf)
	J, err := matrix.NewFromData(c.k, c.n, buf)
	if err != nil {
		return nil, fmt.Errorf("constraint: JacobianAt: %w: %w", ErrNonFinite, err)
	}

	return J, nil
}
