package space_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/manifold/space"
)

func TestExpandPath(t *testing.T) {
	for _, kind := range space.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			sp := mustSpace(t, kind, unitSphere(t))
			waypoints := []space.State{
				endpoint(t, sp, 1, 0, 0),
				endpoint(t, sp, 0, 1, 0),
				endpoint(t, sp, 0, 0, 1),
			}

			p, err := space.ExpandPath(sp, waypoints)
			require.NoError(t, err)
			require.True(t, p.Complete)
			requireMotionValid(t, sp, space.Motion{States: p.States})
			for i := 1; i < len(p.States); i++ {
				require.False(t, p.States[i].Equal(p.States[i-1]), "duplicated junction at %d", i)
			}
			assert.True(t, p.States[0].Equal(waypoints[0]))
			assert.True(t, p.States[len(p.States)-1].Equal(waypoints[2]))

			sum := space.Summarize(sp, p)
			assert.True(t, sum.Complete)
			assert.Equal(t, len(p.States), sum.States)
			// Two quarter great circles; the atlas measures inside charts in
			// tangent coordinates, which shortens it slightly.
			assert.InEpsilon(t, math.Pi, sum.Length, 0.05)
			if kind == space.KindAtlas {
				assert.Positive(t, sum.Charts)
				assert.GreaterOrEqual(t, sum.FrontierPercent, 0.0)
				assert.LessOrEqual(t, sum.FrontierPercent, 100.0)
			} else {
				assert.Zero(t, sum.Charts)
			}
		})
	}
}

func TestExpandPath_StopsAtPartialEdge(t *testing.T) {
	sp := mustSpace(t, space.KindProjected, unitSphere(t), space.WithMaxSteps(3))
	p, err := space.ExpandPath(sp, []space.State{
		endpoint(t, sp, 1, 0, 0),
		endpoint(t, sp, 0, 1, 0),
		endpoint(t, sp, 0, 0, 1),
	})
	require.NoError(t, err)
	assert.False(t, p.Complete)
	assert.Len(t, p.States, 4)
}

func TestExpandPath_Degenerate(t *testing.T) {
	sp := mustSpace(t, space.KindNullspace, unitSphere(t))

	_, err := space.ExpandPath(sp, nil)
	require.ErrorIs(t, err, space.ErrEmptyPath)

	single := endpoint(t, sp, 0, 0, 1)
	p, err := space.ExpandPath(sp, []space.State{single})
	require.NoError(t, err)
	assert.True(t, p.Complete)
	require.Len(t, p.States, 1)
	assert.Zero(t, space.Summarize(sp, p).Length)
}

func TestExpandPath_PropagatesError(t *testing.T) {
	sp := mustSpace(t, space.KindNullspace, unitSphere(t))
	p, err := space.ExpandPath(sp, []space.State{
		endpoint(t, sp, 1, 0, 0),
		endpoint(t, sp, 0, 0, 1),
		{X: []float64{0, 0, -1}},
	})
	require.ErrorIs(t, err, space.ErrDivergentStep)
	assert.False(t, p.Complete)
	assert.True(t, p.States[len(p.States)-1].Equal(space.State{X: []float64{0, 0, 1}}))
}
