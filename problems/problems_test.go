package problems_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/manifold/constraint"
	"github.com/katalvlaran/manifold/problems"
	"github.com/katalvlaran/manifold/rng"
	"github.com/katalvlaran/manifold/space"
)

func TestNames(t *testing.T) {
	names := problems.Names()
	for _, want := range []string{"chain", "circle", "plane", "sphere", "sphere-wall", "torus"} {
		assert.Contains(t, names, want)
	}
	assert.IsIncreasing(t, names)
}

func TestBuiltins_EndpointsOnManifold(t *testing.T) {
	for _, name := range problems.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := problems.Lookup(name)
			require.NoError(t, err)
			c, err := p.Constraint()
			require.NoError(t, err)
			for i, w := range p.Waypoints() {
				assert.LessOrEqualf(t, c.ResidualNorm(w), c.Tolerance(), "waypoint %d", i)
				if p.Validity != nil {
					assert.Truef(t, p.Validity(w), "waypoint %d invalid", i)
				}
			}
		})
	}
}

func TestBuiltins_JacobianMatchesFiniteDifferences(t *testing.T) {
	points := [][]float64{{0.7, -0.4, 0.3}, {2.5, 1.1, -0.6}, {-1.3, 0.2, 0.9}}
	for _, name := range []string{"sphere", "torus", "plane", "circle"} {
		p, err := problems.Lookup(name)
		require.NoError(t, err)
		fn := p.Function
		n, k := fn.AmbientDimension(), fn.CoDimension()
		for _, x := range points {
			want := make([]float64, k*n)
			got := make([]float64, k*n)
			fn.Jacobian(x, want)
			constraint.NumericJacobian(fn.Evaluate, k, 1e-6, x, got)
			require.Empty(t, cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-5)), "%s at %v", name, x)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := problems.Lookup("klein-bottle")
	require.ErrorIs(t, err, problems.ErrUnknownProblem)
}

func TestRegister(t *testing.T) {
	err := problems.Register(problems.Problem{Name: "sphere", Function: problems.Sphere(),
		Start: []float64{1, 0, 0}, Goal: []float64{0, 1, 0}})
	require.ErrorIs(t, err, problems.ErrDuplicateProblem)

	err = problems.Register(problems.Problem{Name: "broken", Function: problems.Sphere(),
		Start: []float64{1, 0}, Goal: []float64{0, 1, 0}})
	require.ErrorIs(t, err, problems.ErrInvalidProblem)

	err = problems.Register(problems.Problem{Name: "nofunc"})
	require.ErrorIs(t, err, problems.ErrInvalidProblem)
}

func TestCircle_TraversesAlongCurve(t *testing.T) {
	p, err := problems.Lookup("circle")
	require.NoError(t, err)
	c, err := p.Constraint()
	require.NoError(t, err)
	require.Equal(t, 1, c.ManifoldDimension())

	for _, kind := range space.Kinds() {
		sp, err := space.New(kind, c, p.SpaceOptions()...)
		require.NoError(t, err, kind)
		from, err := sp.NewState(p.Start)
		require.NoError(t, err)
		to, err := sp.NewState(p.Goal)
		require.NoError(t, err)

		m, err := sp.Traverse(from, to)
		require.NoError(t, err, kind)
		assert.True(t, m.Complete, kind)
		for _, s := range m.States {
			assert.InDelta(t, 0, s.X[2], 1e-4)
		}
	}
}

func TestSphereWall_ExpandsThroughGap(t *testing.T) {
	p, err := problems.Lookup("sphere-wall")
	require.NoError(t, err)
	c, err := p.Constraint()
	require.NoError(t, err)
	sp, err := space.NewNullspace(c, p.SpaceOptions()...)
	require.NoError(t, err)

	var waypoints []space.State
	for _, w := range p.Waypoints() {
		s, err := sp.NewState(w)
		require.NoError(t, err)
		waypoints = append(waypoints, s)
	}
	path, err := space.ExpandPath(sp, waypoints)
	require.NoError(t, err)
	assert.True(t, path.Complete)
	for _, s := range path.States {
		assert.True(t, sp.IsValid(s))
	}
}

func TestChain(t *testing.T) {
	_, err := problems.Chain(0)
	require.ErrorIs(t, err, problems.ErrInvalidProblem)

	for _, links := range []int{1, 3, problems.DefaultChainLinks} {
		p, err := problems.ChainProblem(links)
		require.NoError(t, err)
		c, err := p.Constraint()
		require.NoError(t, err)
		assert.Equal(t, 3*links, c.AmbientDimension())
		assert.Equal(t, links+1, c.CoDimension())
		assert.Equal(t, 2*links-1, c.ManifoldDimension())

		for i, w := range p.Waypoints() {
			assert.LessOrEqualf(t, c.ResidualNorm(w), 1e-12, "%d links, waypoint %d", links, i)
			_, _, err = c.Bases(w)
			require.NoError(t, err, "full rank at waypoint %d", i)
		}

		fn := p.Function
		n, k := fn.AmbientDimension(), fn.CoDimension()
		x := make([]float64, n)
		rng.Uniform(rng.New(int64(links)), x, make([]float64, n), onesTimes(n, 2))
		want := make([]float64, k*n)
		got := make([]float64, k*n)
		fn.Jacobian(x, want)
		constraint.NumericJacobian(fn.Evaluate, k, 1e-6, x, got)
		require.Empty(t, cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-5)), "%d links", links)
	}
}

func TestChain_ProjectedTraversal(t *testing.T) {
	p, err := problems.ChainProblem(3)
	require.NoError(t, err)
	c, err := p.Constraint()
	require.NoError(t, err)
	sp, err := space.NewProjected(c)
	require.NoError(t, err)

	from, err := sp.NewState(p.Start)
	require.NoError(t, err)
	to, err := sp.NewState(p.Goal)
	require.NoError(t, err)
	m, err := sp.Traverse(from, to)
	require.NoError(t, err)
	assert.True(t, m.Complete)

	for i, s := range m.States {
		require.LessOrEqualf(t, c.ResidualNorm(s.X), c.Tolerance(), "state %d", i)
	}
}

func onesTimes(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}
