package atlas

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/constraint"
)

// Ref is a weak reference to a chart: the chart id plus the registry
// generation at which ownership was last confirmed. The zero Ref names no chart.
type Ref struct {
	ID         int
	Generation uint64
}

// Valid reports whether r names a chart.
func (r Ref) Valid() bool { return r.Generation > 0 }

// Extension is the chart-creation budget of a single traversal.
// It is not safe for concurrent use; each traversal owns one.
type Extension struct {
	limit   int
	created int
}

// Created returns the number of charts created through e.
func (e *Extension) Created() int {
	if e == nil {
		return 0
	}

	return e.created
}

// charge reserves one creation; a nil extension is unbounded.
func (e *Extension) charge() error {
	if e == nil {
		return nil
	}
	if e.created >= e.limit {
		return fmt.Errorf("atlas: %d charts created in one extension (limit %d): %w",
			e.created+1, e.limit, ErrChartExplosion)
	}
	e.created++

	return nil
}

// Atlas is a concurrent registry of charts over one constraint manifold.
type Atlas struct {
	c        *constraint.Constraint
	opts     Options
	cosAlpha float64
	log      *zap.Logger

	mu         sync.RWMutex
	charts     []*Chart
	generation uint64
}

// New returns an empty atlas over c.
func New(c *constraint.Constraint, opts ...Option) (*Atlas, error) {
	if c == nil {
		return nil, ErrNilConstraint
	}
	o := gatherOptions(opts...)

	return &Atlas{
		c:        c,
		opts:     o,
		cosAlpha: math.Cos(o.alpha),
		log:      o.logger.Named("atlas"),
	}, nil
}

// Constraint returns the manifold definition.
func (a *Atlas) Constraint() *constraint.Constraint { return a.c }

// Rho returns the chart validity radius.
func (a *Atlas) Rho() float64 { return a.opts.rho }

// Epsilon returns the tangent-plane distance tolerance.
func (a *Atlas) Epsilon() float64 { return a.opts.epsilon }

// Alpha returns the normal-space angle tolerance.
func (a *Atlas) Alpha() float64 { return a.opts.alpha }

// Exploration returns the frontier sampling probability.
func (a *Atlas) Exploration() float64 { return a.opts.exploration }

// NewExtension returns a fresh creation budget of MaxChartsPerExtension charts.
func (a *Atlas) NewExtension() *Extension {
	return &Extension{limit: a.opts.maxCharts}
}

// ChartCount returns the number of registered charts. It never decreases.
func (a *Atlas) ChartCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.charts)
}

// Generation returns the registry generation (incremented per chart).
func (a *Atlas) Generation() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.generation
}

// Chart returns the chart with the given id.
func (a *Atlas) Chart(id int) (*Chart, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if id < 0 || id >= len(a.charts) {
		return nil, fmt.Errorf("atlas: chart %d: %w", id, ErrUnknownChart)
	}

	return a.charts[id], nil
}

// Charts returns a snapshot of the registered charts in id order.
func (a *Atlas) Charts() []*Chart {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return append([]*Chart(nil), a.charts...)
}

// RefOf returns a reference to ch stamped with the current generation.
func (a *Atlas) RefOf(ch *Chart) Ref {
	return Ref{ID: ch.id, Generation: a.Generation()}
}

// Owner returns the first chart (by id) that owns x, or nil.
func (a *Atlas) Owner(x []float64) *Chart {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.ownerLocked(x)
}

func (a *Atlas) ownerLocked(x []float64) *Chart {
	for _, ch := range a.charts {
		if ch.Owns(x) {
			return ch
		}
	}

	return nil
}

// reuse selects which existing chart create returns instead of registering
// a new one.
type reuse int

const (
	reuseOwner  reuse = iota // any chart owning x
	reuseAnchor              // a chart anchored at x or at Project(x)
)

// FindOrCreateChart returns a chart owning x, creating one anchored at
// Project(x) when none does.
//
// Implementation:
//   - Stage 1: read-locked owner search.
//   - Stage 2: projection and bases computed without holding the lock.
//   - Stage 3: write lock, re-check ownership (another goroutine may have
//     covered x meanwhile), charge ext, register, link neighbours.
//
// Errors: ErrChartExplosion, constraint.ErrProjectionDivergence.
func (a *Atlas) FindOrCreateChart(x []float64, ext *Extension) (*Chart, error) {
	if ch := a.Owner(x); ch != nil {
		return ch, nil
	}

	return a.create(x, ext, reuseOwner)
}

// CreateChart registers a new chart anchored at Project(x) even when x is
// already owned. Traversals use it to refine the atlas where curvature
// outgrew the current chart. A chart already anchored there is returned
// instead and ext is not charged.
func (a *Atlas) CreateChart(x []float64, ext *Extension) (*Chart, error) {
	return a.create(x, ext, reuseAnchor)
}

// AnchorChart returns the chart anchored at x (within the constraint
// tolerance) or creates one at Project(x). Start and goal states are anchored
// this way so they always sit at a chart centre.
func (a *Atlas) AnchorChart(x []float64) (*Chart, error) {
	a.mu.RLock()
	ch := a.anchoredLocked(x)
	a.mu.RUnlock()
	if ch != nil {
		return ch, nil
	}

	return a.create(x, nil, reuseAnchor)
}

func (a *Atlas) anchoredLocked(points ...[]float64) *Chart {
	tol := a.c.Tolerance()
	for _, ch := range a.charts {
		for _, p := range points {
			if len(p) == len(ch.anchor) && floats.Distance(p, ch.anchor, 2) <= tol {
				return ch
			}
		}
	}

	return nil
}

// Resolve turns a weak reference into a chart owning x. A reference stamped
// with the current generation is trusted; a stale one is re-checked with
// Owns; otherwise x is re-resolved through FindOrCreateChart.
func (a *Atlas) Resolve(ref Ref, x []float64) (*Chart, error) {
	return a.ResolveWithin(ref, x, nil)
}

// ResolveWithin is Resolve with any chart it creates charged to ext.
func (a *Atlas) ResolveWithin(ref Ref, x []float64, ext *Extension) (*Chart, error) {
	if ref.Valid() {
		a.mu.RLock()
		gen := a.generation
		var ch *Chart
		if ref.ID >= 0 && ref.ID < len(a.charts) {
			ch = a.charts[ref.ID]
		}
		a.mu.RUnlock()

		if ch != nil && (ref.Generation == gen || ch.Owns(x)) {
			return ch, nil
		}
	}

	return a.FindOrCreateChart(x, ext)
}

func (a *Atlas) create(x []float64, ext *Extension, mode reuse) (*Chart, error) {
	anchor, err := a.c.Project(x)
	if err != nil {
		return nil, fmt.Errorf("atlas: anchor projection: %w", err)
	}
	tangent, normal, err := a.c.Bases(anchor)
	if err != nil {
		return nil, fmt.Errorf("atlas: chart bases: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var existing *Chart
	switch mode {
	case reuseOwner:
		existing = a.ownerLocked(x)
	case reuseAnchor:
		existing = a.anchoredLocked(x, anchor)
	}
	if existing != nil {
		return existing, nil
	}
	if err = ext.charge(); err != nil {
		a.log.Debug("chart budget exhausted",
			zap.Int("charts", len(a.charts)), zap.Int("limit", a.opts.maxCharts))
		return nil, err
	}

	ch := &Chart{
		id:       len(a.charts),
		anchor:   anchor,
		tangent:  tangent,
		normal:   normal,
		c:        a.c,
		rho:      a.opts.rho,
		epsilon:  a.opts.epsilon,
		cosAlpha: a.cosAlpha,
	}
	neighbours := 0
	reach := 2 * a.opts.rho
	for _, other := range a.charts {
		if floats.Distance(anchor, other.anchor, 2) < reach && link(ch, other) {
			neighbours++
		}
	}
	a.charts = append(a.charts, ch)
	a.generation++

	a.log.Debug("chart created",
		zap.Int("id", ch.id),
		zap.Int("neighbours", neighbours),
		zap.Int("charts", len(a.charts)),
		zap.Int("extension", ext.Created()))
	a.opts.recorder.ChartCreated(len(a.charts))

	return ch, nil
}
