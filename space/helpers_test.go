package space_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/constraint"
	"github.com/katalvlaran/manifold/space"
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

func mustSpace(t *testing.T, kind space.Kind, c *constraint.Constraint, opts ...space.Option) space.StateSpace {
	t.Helper()
	sp, err := space.New(kind, c, opts...)
	require.NoError(t, err)

	return sp
}

// endpoint builds a state, anchoring a chart for the atlas representation.
func endpoint(t *testing.T, sp space.StateSpace, x ...float64) space.State {
	t.Helper()
	var (
		s   space.State
		err error
	)
	if as, ok := sp.(*space.AtlasSpace); ok {
		s, err = as.AnchorState(x)
	} else {
		s, err = sp.NewState(x)
	}
	require.NoError(t, err)

	return s
}

// requireMotionValid checks every state is on the manifold and that
// consecutive states are at most δ(1+tol) apart.
func requireMotionValid(t *testing.T, sp space.StateSpace, m space.Motion) {
	t.Helper()
	c := sp.Constraint()
	limit := sp.Delta() * (1 + c.Tolerance())
	for i, s := range m.States {
		require.LessOrEqualf(t, c.ResidualNorm(s.X), c.Tolerance(), "state %d off manifold", i)
		if i > 0 {
			d := floats.Distance(m.States[i-1].X, s.X, 2)
			require.LessOrEqualf(t, d, limit, "step %d too long", i)
		}
	}
}
