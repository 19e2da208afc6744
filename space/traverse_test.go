package space_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/atlas"
	"github.com/katalvlaran/manifold/space"
)

func TestTraverse_SphereQuarterCircle(t *testing.T) {
	for _, kind := range space.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			sp := mustSpace(t, kind, unitSphere(t), space.WithDelta(0.02))
			from := endpoint(t, sp, 1, 0, 0)
			to := endpoint(t, sp, 0, 1, 0)

			m, err := sp.Traverse(from, to)
			require.NoError(t, err)
			require.True(t, m.Complete)
			assert.Equal(t, space.StopReached, m.Stop)
			require.Greater(t, len(m.States), 70, "a quarter circle needs ~π/2/δ steps")

			requireMotionValid(t, sp, m)
			assert.True(t, m.States[0].Equal(from))
			last, ok := m.Last()
			require.True(t, ok)
			assert.True(t, last.Equal(to))
		})
	}
}

func TestTraverse_SameState(t *testing.T) {
	for _, kind := range space.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			sp := mustSpace(t, kind, unitSphere(t))
			a := endpoint(t, sp, 0, 0, 1)

			m, err := sp.Traverse(a, a)
			require.NoError(t, err)
			require.Len(t, m.States, 1)
			assert.True(t, m.Complete)
			assert.True(t, m.States[0].Equal(a))
		})
	}
}

func TestTraverse_StopsAtInvalidState(t *testing.T) {
	sp := mustSpace(t, space.KindProjected, unitSphere(t),
		space.WithValidity(func(x []float64) bool { return x[1] <= 0.5 }))
	from := endpoint(t, sp, 1, 0, 0)
	to := space.State{X: []float64{0, -1, 0}}
	blocked := space.State{X: []float64{0, 1, 0}}

	m, err := sp.Traverse(from, blocked)
	require.NoError(t, err)
	assert.False(t, m.Complete)
	assert.Equal(t, space.StopInvalid, m.Stop)
	require.Len(t, m.States, 1, "an invalid target leaves only the source")

	// A forbidden band y ∈ (-0.9, -0.5) lies across the great circle.
	wall := mustSpace(t, space.KindNullspace, unitSphere(t),
		space.WithValidity(func(x []float64) bool { return x[1] >= -0.5 || x[1] <= -0.9 }))
	m, err = wall.Traverse(from, to)
	require.NoError(t, err)
	assert.Equal(t, space.StopInvalid, m.Stop)
	assert.False(t, m.Complete)
	requireMotionValid(t, wall, m)
	for _, s := range m.States {
		assert.GreaterOrEqual(t, s.X[1], -0.5)
	}
	assert.Greater(t, len(m.States), 1)
}

func TestTraverse_StepLimit(t *testing.T) {
	sp := mustSpace(t, space.KindProjected, unitSphere(t), space.WithMaxSteps(5))
	m, err := sp.Traverse(endpoint(t, sp, 1, 0, 0), endpoint(t, sp, 0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, space.StopStepLimit, m.Stop)
	assert.False(t, m.Complete)
	assert.Len(t, m.States, 6)
}

func TestTraverse_DivergentStep(t *testing.T) {
	// Antipodal target: the chord is the normal line at the source.
	for _, kind := range []space.Kind{space.KindProjected, space.KindNullspace, space.KindAtlas} {
		t.Run(string(kind), func(t *testing.T) {
			sp := mustSpace(t, kind, unitSphere(t))
			from := endpoint(t, sp, 0, 0, 1)
			to := space.State{X: []float64{0, 0, -1}}

			m, err := sp.Traverse(from, to)
			require.ErrorIs(t, err, space.ErrDivergentStep)
			var te *space.TraversalError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, 1, te.Step)
			assert.Equal(t, space.StopError, m.Stop)
			require.Len(t, m.States, 1)
			assert.True(t, m.States[0].Equal(from))
		})
	}
}

func TestTraverse_ChartExplosion(t *testing.T) {
	sp := mustSpace(t, space.KindAtlas, unitSphere(t),
		space.WithAtlasOptions(atlas.WithRho(0.1), atlas.WithMaxChartsPerExtension(1)))
	from := endpoint(t, sp, 1, 0, 0)
	to := space.State{X: []float64{0, 1, 0}}

	m, err := sp.Traverse(from, to)
	require.ErrorIs(t, err, atlas.ErrChartExplosion)
	assert.False(t, m.Complete)
	assert.Equal(t, space.StopError, m.Stop)
	require.NotEmpty(t, m.States)
	assert.True(t, m.States[0].Equal(from))
	requireMotionValid(t, sp, m)
	for _, s := range m.States {
		assert.True(t, sp.IsValid(s))
	}

	// The atlas kept the one chart the extension allowed.
	assert.Equal(t, 2, sp.(*space.AtlasSpace).Atlas().ChartCount())
}

func TestTraverse_UnregisteredSourceChargesExtension(t *testing.T) {
	sp := mustSpace(t, space.KindAtlas, unitSphere(t),
		space.WithAtlasOptions(atlas.WithRho(0.1), atlas.WithMaxChartsPerExtension(1)))
	from := space.State{X: []float64{1, 0, 0}}
	to := space.State{X: []float64{0, 1, 0}}

	m, err := sp.Traverse(from, to)
	require.ErrorIs(t, err, atlas.ErrChartExplosion)
	assert.False(t, m.Complete)
	requireMotionValid(t, sp, m)

	// The chart resolved for the source used up the budget.
	assert.Equal(t, 1, sp.(*space.AtlasSpace).Atlas().ChartCount())
}

func TestTraverse_RepeatedQueriesShareAnchors(t *testing.T) {
	sp := mustSpace(t, space.KindAtlas, unitSphere(t), space.WithAtlasOptions(atlas.WithRho(0.2)))
	a := sp.(*space.AtlasSpace).Atlas()

	for i := 0; i < 2; i++ {
		m, err := sp.Traverse(endpoint(t, sp, 1, 0, 0), endpoint(t, sp, 0, 1, 0))
		require.NoError(t, err)
		require.True(t, m.Complete)
	}

	charts := a.Charts()
	for i, ch := range charts {
		for _, other := range charts[:i] {
			assert.Greater(t, floats.Distance(ch.Anchor(), other.Anchor(), 2), 1e-9,
				"charts %d and %d share an anchor", other.ID(), ch.ID())
		}
	}
}

func TestTraverse_AtlasGrowsMonotonically(t *testing.T) {
	sp := mustSpace(t, space.KindAtlas, unitSphere(t))
	a := sp.(*space.AtlasSpace).Atlas()

	points := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {-1, 0, 0}}
	prev := 0
	for i := 1; i < len(points); i++ {
		m, err := sp.Traverse(endpoint(t, sp, points[i-1]...), endpoint(t, sp, points[i]...))
		require.NoError(t, err)
		require.True(t, m.Complete)
		requireMotionValid(t, sp, m)
		for _, s := range m.States {
			assert.True(t, s.Chart.Valid())
		}
		require.GreaterOrEqual(t, a.ChartCount(), prev)
		prev = a.ChartCount()
	}
}

func TestTraverse_DimensionMismatch(t *testing.T) {
	sp := mustSpace(t, space.KindNullspace, unitSphere(t))
	_, err := sp.Traverse(space.State{X: []float64{1, 0}}, endpoint(t, sp, 1, 0, 0))
	require.ErrorIs(t, err, space.ErrDimensionMismatch)
}

func TestTraverse_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sp := mustSpace(t, space.KindProjected, unitSphere(t), space.WithLogger(zap.New(core)))

	_, err := sp.Traverse(endpoint(t, sp, 1, 0, 0), endpoint(t, sp, 0, 1, 0))
	require.NoError(t, err)
	_, err = sp.Traverse(endpoint(t, sp, 0, 0, 1), space.State{X: []float64{0, 0, -1}})
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("traversal finished").Len())
	failed := logs.FilterMessage("traversal failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "projected", failed[0].ContextMap()["kind"])
}
