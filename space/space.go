// SPDX-License-Identifier: MIT

package space

import (
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/constraint"
)

// Kind names a manifold representation.
type Kind string

const (
	KindProjected Kind = "projected"
	KindNullspace Kind = "nullspace"
	KindAtlas     Kind = "atlas"
)

// Kinds lists the supported representations.
func Kinds() []Kind { return []Kind{KindProjected, KindNullspace, KindAtlas} }

// ParseKind accepts "projected", "null", "nullspace" and "atlas" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "projected", "proj":
		return KindProjected, nil
	case "null", "nullspace":
		return KindNullspace, nil
	case "atlas":
		return KindAtlas, nil
	}

	return "", fmt.Errorf("space: %q: %w", s, ErrUnknownKind)
}

// StateSpace is the capability set a planner needs from a constrained space.
type StateSpace interface {
	Kind() Kind
	AmbientDimension() int
	ManifoldDimension() int
	Constraint() *constraint.Constraint
	Delta() float64
	Bounds() (lo, hi []float64)

	// NewState projects x onto the manifold and wraps it as a State.
	NewState(x []float64) (State, error)

	// IsValid reports whether s is on the manifold, inside the bounds and
	// accepted by the validity predicate.
	IsValid(s State) bool

	Distance(a, b State) float64

	// Interpolate returns the chord point (1−t)a + tb re-projected onto the
	// manifold. It is a coarse waypoint generator, not a traversal.
	Interpolate(a, b State, t float64) (State, error)

	// SampleValid draws a valid state using r, which must not be shared
	// across goroutines.
	SampleValid(r *rand.Rand) (State, error)

	// Traverse walks from → to in steps of at most δ.
	Traverse(from, to State) (Motion, error)
}

// New builds the representation named by kind.
func New(kind Kind, c *constraint.Constraint, opts ...Option) (StateSpace, error) {
	switch kind {
	case KindProjected:
		return NewProjected(c, opts...)
	case KindNullspace:
		return NewNullspace(c, opts...)
	case KindAtlas:
		return NewAtlas(c, opts...)
	}

	return nil, fmt.Errorf("space: %q: %w", kind, ErrUnknownKind)
}

// base carries what every representation shares.
type base struct {
	kind   Kind
	c      *constraint.Constraint
	opts   Options
	lo, hi []float64
	log    *zap.Logger
}

func newBase(kind Kind, c *constraint.Constraint, opts ...Option) (*base, error) {
	if c == nil {
		return nil, ErrNilConstraint
	}
	o := gatherOptions(opts...)
	n := c.AmbientDimension()

	lo, hi := o.lo, o.hi
	if lo == nil && hi == nil {
		lo, hi = make([]float64, n), make([]float64, n)
		for i := range lo {
			lo[i], hi[i] = -DefaultBound, DefaultBound
		}
	}
	if len(lo) != n || len(hi) != n {
		return nil, fmt.Errorf("space: bounds have %d/%d coordinates, want %d: %w",
			len(lo), len(hi), n, ErrDimensionMismatch)
	}
	for i := range lo {
		if lo[i] > hi[i] {
			return nil, fmt.Errorf("space: bound %d: %g > %g: %w", i, lo[i], hi[i], ErrInvalidBounds)
		}
	}

	return &base{
		kind: kind,
		c:    c,
		opts: o,
		lo:   lo,
		hi:   hi,
		log:  o.logger.Named("space").With(zap.String("kind", string(kind))),
	}, nil
}

func (b *base) Kind() Kind                         { return b.kind }
func (b *base) AmbientDimension() int              { return b.c.AmbientDimension() }
func (b *base) ManifoldDimension() int             { return b.c.ManifoldDimension() }
func (b *base) Constraint() *constraint.Constraint { return b.c }
func (b *base) Delta() float64                     { return b.opts.delta }

func (b *base) Bounds() (lo, hi []float64) {
	return append([]float64(nil), b.lo...), append([]float64(nil), b.hi...)
}

func (b *base) inBounds(x []float64) bool {
	for i, v := range x {
		if v < b.lo[i] || v > b.hi[i] {
			return false
		}
	}

	return true
}

func (b *base) IsValid(s State) bool {
	if len(s.X) != b.c.AmbientDimension() || !b.inBounds(s.X) || !b.c.IsSatisfied(s.X) {
		return false
	}

	return b.opts.validity == nil || b.opts.validity(s.X)
}

func (b *base) checkState(op string, s State) error {
	if len(s.X) != b.c.AmbientDimension() {
		return fmt.Errorf("space: %s: len(x)=%d, want %d: %w",
			op, len(s.X), b.c.AmbientDimension(), ErrDimensionMismatch)
	}

	return nil
}

// Distance is the ambient Euclidean distance.
func (b *base) Distance(a, c State) float64 {
	return floats.Distance(a.X, c.X, 2)
}

func (b *base) project(x []float64) (State, error) {
	p, err := b.c.Project(x)
	if err != nil {
		return State{}, err
	}

	return State{X: p}, nil
}

func (b *base) NewState(x []float64) (State, error) {
	if err := b.checkState("NewState", State{X: x}); err != nil {
		return State{}, err
	}

	return b.project(x)
}

// chord returns (1−t)a + tb.
func chord(a, c []float64, t float64) []float64 {
	x := make([]float64, len(a))
	floats.AddScaledTo(x, a, t, c)
	floats.AddScaled(x, -t, a)

	return x
}

func (b *base) Interpolate(a, c State, t float64) (State, error) {
	if err := b.checkState("Interpolate", a); err != nil {
		return State{}, err
	}
	if err := b.checkState("Interpolate", c); err != nil {
		return State{}, err
	}
	switch {
	case t <= 0:
		return a.Clone(), nil
	case t >= 1:
		return c.Clone(), nil
	}

	return b.project(chord(a.X, c.X, t))
}
