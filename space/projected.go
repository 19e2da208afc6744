package space

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/constraint"
)

// Projected re-projects every chord step with the full Newton projection.
type Projected struct {
	*base
}

var _ StateSpace = (*Projected)(nil)

// NewProjected builds the projection-based representation.
func NewProjected(c *constraint.Constraint, opts ...Option) (*Projected, error) {
	b, err := newBase(KindProjected, c, opts...)
	if err != nil {
		return nil, err
	}

	return &Projected{base: b}, nil
}

func (p *Projected) Traverse(from, to State) (Motion, error) {
	return p.traverse(from, to, projectedStepper{c: p.c})
}

func (p *Projected) SampleValid(r *rand.Rand) (State, error) {
	return p.sampleAmbient(r)
}

type projectedStepper struct{ c *constraint.Constraint }

// step projects cur + s·(goal−cur)/‖goal−cur‖.
func (st projectedStepper) step(cur State, goal []float64, s float64) ([]float64, error) {
	dir := make([]float64, len(goal))
	floats.SubTo(dir, goal, cur.X)
	n := floats.Norm(dir, 2)
	if n == 0 {
		return nil, fmt.Errorf("zero direction: %w", ErrDivergentStep)
	}
	x := make([]float64, len(goal))
	floats.AddScaledTo(x, cur.X, s/n, dir)

	return st.c.Project(x)
}

func (projectedStepper) commit(x []float64) (State, error) { return State{X: x}, nil }
