package constraint_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/manifold/constraint"
)

// sphere is the unit sphere in R³ with an analytic Jacobian.
func sphere() constraint.Funcs {
	return constraint.Funcs{
		N: 3, K: 1,
		F: func(x, out []float64) { out[0] = x[0]*x[0] + x[1]*x[1] + x[2]*x[2] - 1 },
		J: func(x, out []float64) { out[0], out[1], out[2] = 2*x[0], 2*x[1], 2*x[2] },
	}
}

// circle is the unit circle in the z=0 plane, expressed as two equations.
func circle() constraint.Funcs {
	return constraint.Funcs{
		N: 3, K: 2,
		F: func(x, out []float64) {
			out[0] = x[0]*x[0] + x[1]*x[1] + x[2]*x[2] - 1
			out[1] = x[2]
		},
		J: func(x, out []float64) {
			out[0], out[1], out[2] = 2*x[0], 2*x[1], 2*x[2]
			out[3], out[4], out[5] = 0, 0, 1
		},
	}
}

// torusF is the residual of the torus with major radius 2 and minor radius 1.
func torusF(x, out []float64) {
	q := math.Hypot(x[0], x[1]) - 2
	out[0] = q*q + x[2]*x[2] - 1
}

func torusJ(x, out []float64) {
	r := math.Hypot(x[0], x[1])
	q := r - 2
	out[0] = 2 * q * x[0] / r
	out[1] = 2 * q * x[1] / r
	out[2] = 2 * x[2]
}

func mustConstraint(t *testing.T, fn constraint.Function, opts ...constraint.Option) *constraint.Constraint {
	t.Helper()
	c, err := constraint.New(fn, opts...)
	require.NoError(t, err)

	return c
}

// countingRecorder tallies projection outcomes.
type countingRecorder struct {
	mu       sync.Mutex
	ok, fail int
	iters    []int
}

func (r *countingRecorder) ObserveProjection(iterations int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.fail++
	} else {
		r.ok++
	}
	r.iters = append(r.iters, iterations)
}

func (r *countingRecorder) ChartCreated(int)                             {}
func (r *countingRecorder) ObserveTraversal(string, string, string, int) {}
func (r *countingRecorder) ObserveSample(string, int, error)             {}
