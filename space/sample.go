package space

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/manifold/rng"
)

// sampleAmbient draws uniform candidates in the bounding box, projects them
// and keeps the first valid one. Projection failures count as attempts.
func (b *base) sampleAmbient(r *rand.Rand) (State, error) {
	n := b.c.AmbientDimension()
	x := make([]float64, n)
	for attempt := 1; attempt <= b.opts.retries; attempt++ {
		rng.Uniform(r, x, b.lo, b.hi)
		s, err := b.project(x)
		if err != nil || !b.IsValid(s) {
			continue
		}
		b.opts.recorder.ObserveSample(string(b.kind), attempt, nil)

		return s, nil
	}

	return State{}, b.exhausted()
}

func (b *base) exhausted() error {
	err := fmt.Errorf("space: %d attempts: %w", b.opts.retries, ErrNoValidSample)
	b.opts.recorder.ObserveSample(string(b.kind), b.opts.retries, err)
	b.log.Debug("sampling exhausted", zap.Int("retries", b.opts.retries))

	return err
}

// SampleValid draws around an existing chart: a chart is picked by
// Atlas.SampleChart, a point is drawn uniformly from the tangent ball of
// radius ρ_s and retracted. The result is registered with its owning chart,
// so sampling grows the atlas past its frontier. An empty atlas is seeded
// from an ambient sample.
func (as *AtlasSpace) SampleValid(r *rand.Rand) (State, error) {
	if as.atlas.ChartCount() == 0 {
		s, err := as.sampleAmbient(r)
		if err != nil {
			return State{}, err
		}
		return as.NewState(s.X)
	}

	radius := as.atlas.SamplingRadius()
	u := make([]float64, as.c.ManifoldDimension())
	for attempt := 1; attempt <= as.opts.retries; attempt++ {
		ch, err := as.atlas.SampleChart(r)
		if err != nil {
			return State{}, err
		}
		rng.InBall(r, u, radius)
		x, err := ch.FromTangent(u)
		if err != nil || !as.IsValid(State{X: x}) {
			continue
		}
		owner, err := as.atlas.FindOrCreateChart(x, nil)
		if err != nil {
			continue
		}
		as.opts.recorder.ObserveSample(string(as.kind), attempt, nil)

		return State{X: x, Chart: as.atlas.RefOf(owner)}, nil
	}

	return State{}, as.exhausted()
}
