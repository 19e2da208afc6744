package space

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/metrics"
)

const (
	// stallFraction: a retracted step shorter than stallFraction·δ makes no progress.
	stallFraction = 1e-3

	// maxStepShrink caps the rescaling of one step back under δ.
	maxStepShrink = 8

	// shrinkMargin keeps a rescaled step slightly under δ.
	shrinkMargin = 0.99
)

// stepper is the per-traversal, per-representation step rule.
type stepper interface {
	// step proposes the retracted point reached by moving cur towards goal
	// by a step of length s (ambient or tangent, per representation).
	step(cur State, goal []float64, s float64) ([]float64, error)

	// commit turns an accepted point into a State.
	commit(x []float64) (State, error)
}

// traverse is the loop shared by every representation.
//
// Implementation:
//   - Stage 1: dimension and validity checks; from≈to returns [from].
//   - Stage 2: while dist(cur, to) > δ, propose a step of length δ,
//     rescale it until the ambient displacement is ≤ δ, then reject it when it
//     exceeds λδ, stalls, or pushes total travel past λ·dist(from, to).
//   - Stage 3: an invalid state stops the walk (partial); the step cap stops
//     it (partial); reaching within δ appends `to` (complete).
//
// Numeric failures return the validated prefix with a *TraversalError.
func (b *base) traverse(from, to State, st stepper) (m Motion, err error) {
	defer func() { b.observeTraversal(m, err) }()

	if err = b.checkState("Traverse", from); err != nil {
		return Motion{Stop: StopError}, err
	}
	if err = b.checkState("Traverse", to); err != nil {
		return Motion{Stop: StopError}, err
	}
	if !b.IsValid(from) {
		return Motion{Stop: StopInvalid}, nil
	}
	m.States = []State{from.Clone()}
	if !b.IsValid(to) {
		m.Stop = StopInvalid
		return m, nil
	}

	total := floats.Distance(from.X, to.X, 2)
	if total <= b.c.Tolerance() {
		m.Complete, m.Stop = true, StopReached
		return m, nil
	}

	var (
		delta     = b.opts.delta
		limit     = b.opts.lambda * delta
		maxTravel = b.opts.lambda * total
		travelled float64
		cur       = m.States[0]
	)
	for step := 1; ; step++ {
		remaining := floats.Distance(cur.X, to.X, 2)
		if remaining <= delta {
			m.States = append(m.States, to.Clone())
			m.Complete, m.Stop = true, StopReached
			return m, nil
		}
		if step > b.opts.maxSteps {
			m.Stop = StopStepLimit
			return m, nil
		}

		x, d, serr := b.boundedStep(st, cur, to.X, delta)
		if serr != nil {
			return b.fail(m, step, serr)
		}
		switch {
		case d > limit:
			return b.fail(m, step, fmt.Errorf("step length %g exceeds λδ=%g: %w", d, limit, ErrDivergentStep))
		case d < stallFraction*delta:
			return b.fail(m, step, fmt.Errorf("step length %g: stalled: %w", d, ErrDivergentStep))
		}
		travelled += d
		if travelled > maxTravel {
			return b.fail(m, step, fmt.Errorf("travelled %g exceeds λ·dist=%g: %w", travelled, maxTravel, ErrDivergentStep))
		}

		next, cerr := st.commit(x)
		if cerr != nil {
			return b.fail(m, step, cerr)
		}
		if !b.IsValid(next) {
			m.Stop = StopInvalid
			return m, nil
		}
		m.States = append(m.States, next)
		cur = next
	}
}

// boundedStep proposes a step of length δ and shrinks it until the retracted
// displacement is at most δ (up to maxStepShrink rescales).
func (b *base) boundedStep(st stepper, cur State, goal []float64, delta float64) ([]float64, float64, error) {
	s := delta
	x, err := st.step(cur, goal, s)
	if err != nil {
		return nil, 0, err
	}
	d := floats.Distance(cur.X, x, 2)
	tol := delta * (1 + b.c.Tolerance())
	for i := 0; d > tol && i < maxStepShrink; i++ {
		s *= shrinkMargin * delta / d
		if x, err = st.step(cur, goal, s); err != nil {
			return nil, 0, err
		}
		d = floats.Distance(cur.X, x, 2)
	}

	return x, d, nil
}

func (b *base) fail(m Motion, step int, err error) (Motion, error) {
	m.Stop = StopError

	return m, &TraversalError{Step: step, Stop: StopError, Err: err}
}

func (b *base) observeTraversal(m Motion, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case !m.Complete:
		outcome = metrics.OutcomePartial
	}
	b.opts.recorder.ObserveTraversal(string(b.kind), outcome, string(m.Stop), len(m.States))

	if err != nil {
		var te *TraversalError
		step := 0
		if errors.As(err, &te) {
			step = te.Step
		}
		b.log.Debug("traversal failed",
			zap.Int("step", step), zap.Int("states", len(m.States)), zap.Error(err))
		return
	}
	b.log.Debug("traversal finished",
		zap.String("stop", string(m.Stop)), zap.Bool("complete", m.Complete), zap.Int("states", len(m.States)))
}
