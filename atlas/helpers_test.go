package atlas_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/manifold/atlas"
	"github.com/katalvlaran/manifold/constraint"
)

func unitSphere(t *testing.T) *constraint.Constraint {
	t.Helper()
	c, err := constraint.New(constraint.Funcs{
		N: 3, K: 1,
		F: func(x, out []float64) { out[0] = x[0]*x[0] + x[1]*x[1] + x[2]*x[2] - 1 },
		J: func(x, out []float64) { out[0], out[1], out[2] = 2*x[0], 2*x[1], 2*x[2] },
	})
	require.NoError(t, err)

	return c
}

func newAtlas(t *testing.T, opts ...atlas.Option) *atlas.Atlas {
	t.Helper()
	a, err := atlas.New(unitSphere(t), opts...)
	require.NoError(t, err)

	return a
}

// meridian returns the unit-sphere point at polar angle theta in the xz-plane.
func meridian(theta float64) []float64 {
	return []float64{math.Sin(theta), 0, math.Cos(theta)}
}

// northPole anchors the first chart at (0,0,1).
func northPole(t *testing.T, a *atlas.Atlas) *atlas.Chart {
	t.Helper()
	ch, err := a.AnchorChart([]float64{0, 0, 1})
	require.NoError(t, err)

	return ch
}
