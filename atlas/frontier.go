package atlas

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/manifold/rng"
)

// frontierFraction returns the share of probe points ρ·dir on the chart
// boundary that no neighbour half-space cuts off. Directions come from a
// stream derived from seed and the chart id, so repeated estimates over an
// unchanged atlas agree.
func (ch *Chart) frontierFraction(samples int, seed int64) float64 {
	r := rng.New(rng.DeriveSeed(seed, uint64(ch.id)))
	u := make([]float64, ch.Dimension())
	free := 0
	for i := 0; i < samples; i++ {
		rng.UnitVector(r, u)
		for j := range u {
			u[j] *= ch.rho
		}
		if ch.insideCuts(u) {
			free++
		}
	}

	return float64(free) / float64(samples)
}

// frontierFractions evaluates every chart in snapshot order.
func (a *Atlas) frontierFractions(charts []*Chart) []float64 {
	out := make([]float64, len(charts))
	for i, ch := range charts {
		out[i] = ch.frontierFraction(a.opts.frontierSamples, a.opts.seed)
	}

	return out
}

// EstimateFrontierPercent returns the percentage (0..100) of probed chart
// boundary points that are not covered by a neighbouring chart. A fresh
// single-chart atlas is 100% frontier; it drops as the cover closes up.
// An empty atlas reports 0.
//
// Complexity: O(charts · FrontierSamples · (d + halfspaces·d)).
func (a *Atlas) EstimateFrontierPercent() float64 {
	charts := a.Charts()
	if len(charts) == 0 {
		return 0
	}
	var sum float64
	for _, f := range a.frontierFractions(charts) {
		sum += f
	}

	return 100 * sum / float64(len(charts))
}

// SampleChart picks a chart: with probability Exploration weighted by its
// frontier fraction, otherwise uniformly. r must not be shared across goroutines.
func (a *Atlas) SampleChart(r *rand.Rand) (*Chart, error) {
	charts := a.Charts()
	if len(charts) == 0 {
		return nil, ErrEmptyAtlas
	}
	if r.Float64() < a.opts.exploration {
		weights := a.frontierFractions(charts)
		var total float64
		for _, w := range weights {
			total += w
		}
		if total > 0 {
			pick := r.Float64() * total
			for i, w := range weights {
				if pick < w {
					return charts[i], nil
				}
				pick -= w
			}
			return charts[len(charts)-1], nil
		}
	}

	return charts[r.Intn(len(charts))], nil
}

// SamplingRadius returns ρ_s = ρ / (1 − exploration)^(1/d), the tangent-ball
// radius used when sampling around a chart. It reaches past ρ so samples
// land beyond the current cover.
func (a *Atlas) SamplingRadius() float64 {
	d := float64(a.c.ManifoldDimension())

	return a.opts.rho / math.Pow(1-a.opts.exploration, 1/d)
}
