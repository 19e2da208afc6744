package space_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/manifold/atlas"
	"github.com/katalvlaran/manifold/space"
)

func TestParseKind(t *testing.T) {
	cases := map[string]space.Kind{
		"projected": space.KindProjected,
		"null":      space.KindNullspace,
		"NullSpace": space.KindNullspace,
		" atlas ":   space.KindAtlas,
	}
	for in, want := range cases {
		got, err := space.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := space.ParseKind("tangent-bundle")
	require.ErrorIs(t, err, space.ErrUnknownKind)
}

func TestNew_SetupErrors(t *testing.T) {
	c := unitSphere(t)

	_, err := space.New(space.KindProjected, nil)
	require.ErrorIs(t, err, space.ErrNilConstraint)

	_, err = space.New(space.KindAtlas, c, space.WithBounds([]float64{-1, -1}, []float64{1, 1}))
	require.ErrorIs(t, err, space.ErrDimensionMismatch)

	_, err = space.New(space.KindNullspace, c, space.WithBounds([]float64{0, 0, 2}, []float64{1, 1, 1}))
	require.ErrorIs(t, err, space.ErrInvalidBounds)

	_, err = space.New("simplex", c)
	require.ErrorIs(t, err, space.ErrUnknownKind)

	other := unitSphere(t)
	a, err := atlas.New(other)
	require.NoError(t, err)
	_, err = space.NewAtlas(c, space.WithAtlas(a))
	require.ErrorIs(t, err, space.ErrDimensionMismatch)
}

func TestSpace_Accessors(t *testing.T) {
	c := unitSphere(t)
	for _, kind := range space.Kinds() {
		sp := mustSpace(t, kind, c, space.WithDelta(0.05))
		assert.Equal(t, kind, sp.Kind())
		assert.Equal(t, 3, sp.AmbientDimension())
		assert.Equal(t, 2, sp.ManifoldDimension())
		assert.Same(t, c, sp.Constraint())
		assert.Equal(t, 0.05, sp.Delta())
		lo, hi := sp.Bounds()
		assert.Equal(t, []float64{-20, -20, -20}, lo)
		assert.Equal(t, []float64{20, 20, 20}, hi)
	}
}

func TestIsValid(t *testing.T) {
	sp := mustSpace(t, space.KindProjected, unitSphere(t),
		space.WithBounds([]float64{-2, -2, -0.5}, []float64{2, 2, 2}),
		space.WithValidity(func(x []float64) bool { return x[0] >= 0 }))

	assert.True(t, sp.IsValid(space.State{X: []float64{1, 0, 0}}))
	assert.False(t, sp.IsValid(space.State{X: []float64{-1, 0, 0}}), "validity predicate")
	assert.False(t, sp.IsValid(space.State{X: []float64{0, 0, -1}}), "out of bounds")
	assert.False(t, sp.IsValid(space.State{X: []float64{0.5, 0, 0}}), "off manifold")
	assert.False(t, sp.IsValid(space.State{X: []float64{1, 0}}), "wrong dimension")
}

func TestInterpolate(t *testing.T) {
	for _, kind := range space.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			sp := mustSpace(t, kind, unitSphere(t))
			a := endpoint(t, sp, 1, 0, 0)
			b := endpoint(t, sp, 0, 1, 0)

			mid, err := sp.Interpolate(a, b, 0.5)
			require.NoError(t, err)
			want := []float64{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}
			assert.Empty(t, cmp.Diff(want, mid.X, cmpopts.EquateApprox(0, 1e-4)))

			start, err := sp.Interpolate(a, b, 0)
			require.NoError(t, err)
			assert.True(t, start.Equal(a))
			end, err := sp.Interpolate(a, b, 1.5)
			require.NoError(t, err)
			assert.True(t, end.Equal(b))

			_, err = sp.Interpolate(a, space.State{X: []float64{1}}, 0.5)
			require.ErrorIs(t, err, space.ErrDimensionMismatch)
		})
	}
}

func TestAtlasDistance(t *testing.T) {
	sp := mustSpace(t, space.KindAtlas, unitSphere(t))
	as := sp.(*space.AtlasSpace)

	a := endpoint(t, sp, 0, 0, 1)
	near, err := sp.NewState([]float64{math.Sin(0.3), 0, math.Cos(0.3)})
	require.NoError(t, err)
	require.Equal(t, a.Chart.ID, near.Chart.ID)

	// Same chart: tangent-coordinate distance sin θ.
	assert.InDelta(t, math.Sin(0.3), sp.Distance(a, near), 1e-9)

	far, err := sp.NewState([]float64{1, 0, 0})
	require.NoError(t, err)
	require.NotEqual(t, a.Chart.ID, far.Chart.ID)
	assert.InDelta(t, math.Sqrt2, sp.Distance(a, far), 1e-9)
	assert.Equal(t, 2, as.Atlas().ChartCount())
}

func TestState_CloneEqual(t *testing.T) {
	s := space.State{X: []float64{1, 2, 3}, Chart: atlas.Ref{ID: 4, Generation: 9}}
	c := s.Clone()
	require.True(t, c.Equal(s))
	c.X[0] = 7
	assert.Equal(t, 1.0, s.X[0])
	assert.False(t, c.Equal(s))
	assert.False(t, s.Equal(space.State{X: []float64{1, 2}}))
}
