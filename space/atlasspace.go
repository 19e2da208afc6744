package space

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/atlas"
	"github.com/katalvlaran/manifold/constraint"
)

// AtlasSpace walks in chart tangent coordinates and grows an atlas on demand.
type AtlasSpace struct {
	*base
	atlas *atlas.Atlas
}

var _ StateSpace = (*AtlasSpace)(nil)

// NewAtlas builds the atlas representation. The atlas inherits the space's
// logger and recorder unless WithAtlas supplies one.
func NewAtlas(c *constraint.Constraint, opts ...Option) (*AtlasSpace, error) {
	b, err := newBase(KindAtlas, c, opts...)
	if err != nil {
		return nil, err
	}
	a := b.opts.atlasShared
	if a == nil {
		aopts := append([]atlas.Option{
			atlas.WithLogger(b.opts.logger),
			atlas.WithRecorder(b.opts.recorder),
		}, b.opts.atlasOpts...)
		if a, err = atlas.New(c, aopts...); err != nil {
			return nil, err
		}
	} else if a.Constraint() != c {
		return nil, fmt.Errorf("space: shared atlas is built over another constraint: %w", ErrDimensionMismatch)
	}

	return &AtlasSpace{base: b, atlas: a}, nil
}

// Atlas returns the underlying atlas.
func (as *AtlasSpace) Atlas() *atlas.Atlas { return as.atlas }

func (as *AtlasSpace) register(x []float64, find func([]float64) (*atlas.Chart, error)) (State, error) {
	ch, err := find(x)
	if err != nil {
		return State{}, err
	}

	return State{X: x, Chart: as.atlas.RefOf(ch)}, nil
}

// NewState projects x and resolves its chart, creating one if needed.
func (as *AtlasSpace) NewState(x []float64) (State, error) {
	s, err := as.base.NewState(x)
	if err != nil {
		return State{}, err
	}

	return as.register(s.X, func(p []float64) (*atlas.Chart, error) {
		return as.atlas.FindOrCreateChart(p, nil)
	})
}

// AnchorState projects x and anchors a chart exactly at it. Start and goal
// states of a query are created this way.
func (as *AtlasSpace) AnchorState(x []float64) (State, error) {
	s, err := as.base.NewState(x)
	if err != nil {
		return State{}, err
	}

	return as.register(s.X, as.atlas.AnchorChart)
}

// Distance uses tangent coordinates when both states reference the same
// chart and it still owns both points, otherwise the ambient distance.
func (as *AtlasSpace) Distance(a, b State) float64 {
	if a.Chart.Valid() && b.Chart.Valid() && a.Chart.ID == b.Chart.ID {
		if ch, err := as.atlas.Chart(a.Chart.ID); err == nil && ch.Owns(a.X) && ch.Owns(b.X) {
			ua, errA := ch.ToTangent(a.X)
			ub, errB := ch.ToTangent(b.X)
			if errA == nil && errB == nil {
				return floats.Distance(ua, ub, 2)
			}
		}
	}

	return as.base.Distance(a, b)
}

func (as *AtlasSpace) Interpolate(a, b State, t float64) (State, error) {
	s, err := as.base.Interpolate(a, b, t)
	if err != nil || (t <= 0 || t >= 1) {
		return s, err
	}

	return as.register(s.X, func(p []float64) (*atlas.Chart, error) {
		return as.atlas.FindOrCreateChart(p, nil)
	})
}

// Traverse walks from → to, charging chart creation to a fresh extension.
func (as *AtlasSpace) Traverse(from, to State) (Motion, error) {
	return as.traverse(from, to, &atlasStepper{
		a:        as.atlas,
		ext:      as.atlas.NewExtension(),
		tol:      as.c.Tolerance(),
		cosAlpha: math.Cos(as.atlas.Alpha()),
	})
}

// atlasStepper holds the chart the walk currently stands in.
type atlasStepper struct {
	a        *atlas.Atlas
	ext      *atlas.Extension
	ch       *atlas.Chart
	tol      float64
	cosAlpha float64
}

// step moves s in the current chart's tangent coordinates towards the
// tangent image of goal and retracts through the chart. When the retracted
// point is outside the chart's tolerance, or the ambient displacement shows
// curvature beyond α (‖xₙ − x‖·cos α > s), the chart is refined at cur and
// the step retried once. A chart already anchored at cur is reused for the
// refinement.
func (st *atlasStepper) step(cur State, goal []float64, s float64) ([]float64, error) {
	if st.ch == nil {
		ch, err := st.a.ResolveWithin(cur.Chart, cur.X, st.ext)
		if err != nil {
			return nil, err
		}
		st.ch = ch
	}

	x, ok, err := st.tryStep(cur, goal, s)
	if err != nil || ok {
		return x, err
	}

	if floats.Distance(st.ch.Anchor(), cur.X, 2) <= st.tol {
		return nil, fmt.Errorf("chart %d anchored at the current state cannot absorb the step: %w",
			st.ch.ID(), ErrDivergentStep)
	}
	refined, err := st.a.CreateChart(cur.X, st.ext)
	if err != nil {
		return nil, err
	}
	st.ch = refined

	x, ok, err = st.tryStep(cur, goal, s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("refined chart %d cannot absorb the step: %w", refined.ID(), ErrDivergentStep)
	}

	return x, nil
}

func (st *atlasStepper) tryStep(cur State, goal []float64, s float64) ([]float64, bool, error) {
	ch := st.ch
	uc, err := ch.ToTangent(cur.X)
	if err != nil {
		return nil, false, err
	}
	ug, err := ch.ToTangent(goal)
	if err != nil {
		return nil, false, err
	}
	dir := make([]float64, len(uc))
	floats.SubTo(dir, ug, uc)
	nd := floats.Norm(dir, 2)
	if nd <= minTangentFraction*floats.Distance(cur.X, goal, 2) {
		return nil, false, fmt.Errorf("target lies along the normal space of chart %d: %w", ch.ID(), ErrDivergentStep)
	}
	un := make([]float64, len(uc))
	floats.AddScaledTo(un, uc, s/nd, dir)

	x, err := ch.FromTangent(un)
	if err != nil {
		// A retraction that misses the manifold is a curvature signal, not fatal.
		return nil, false, nil
	}
	if !ch.WithinTolerance(un, x) || floats.Distance(x, cur.X, 2)*st.cosAlpha > s {
		return nil, false, nil
	}

	return x, true, nil
}

// commit keeps the current chart when it still owns x, otherwise hands
// over to the owning chart, creating one against the extension budget.
func (st *atlasStepper) commit(x []float64) (State, error) {
	if st.ch == nil || !st.ch.Owns(x) {
		ch, err := st.a.FindOrCreateChart(x, st.ext)
		if err != nil {
			return State{}, err
		}
		st.ch = ch
	}

	return State{X: x, Chart: st.a.RefOf(st.ch)}, nil
}
