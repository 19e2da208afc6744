package space

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/constraint"
)

// minTangentFraction: a tangent component below this share of the chord
// cannot steer the walk.
const minTangentFraction = 1e-9

// Nullspace steps along the Jacobian null space at the current point and
// corrects with one projection.
type Nullspace struct {
	*base
}

var _ StateSpace = (*Nullspace)(nil)

// NewNullspace builds the null-space representation.
func NewNullspace(c *constraint.Constraint, opts ...Option) (*Nullspace, error) {
	b, err := newBase(KindNullspace, c, opts...)
	if err != nil {
		return nil, err
	}

	return &Nullspace{base: b}, nil
}

func (ns *Nullspace) Traverse(from, to State) (Motion, error) {
	return ns.traverse(from, to, nullspaceStepper{c: ns.c})
}

func (ns *Nullspace) SampleValid(r *rand.Rand) (State, error) {
	return ns.sampleAmbient(r)
}

type nullspaceStepper struct{ c *constraint.Constraint }

// step moves s along the unit tangent component of goal−cur, then projects.
func (st nullspaceStepper) step(cur State, goal []float64, s float64) ([]float64, error) {
	chordDir := make([]float64, len(goal))
	floats.SubTo(chordDir, goal, cur.X)
	t, err := st.c.ProjectTangent(cur.X, chordDir)
	if err != nil {
		return nil, err
	}
	nt := floats.Norm(t, 2)
	if nt <= minTangentFraction*floats.Norm(chordDir, 2) {
		return nil, fmt.Errorf("target lies along the normal space: %w", ErrDivergentStep)
	}
	x := make([]float64, len(goal))
	floats.AddScaledTo(x, cur.X, s/nt, t)

	return st.c.Project(x)
}

func (nullspaceStepper) commit(x []float64) (State, error) { return State{X: x}, nil }
