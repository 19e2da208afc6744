// SPDX-License-Identifier: MIT

// Package rng centralises deterministic random streams for samplers and
// parallel workers.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws across runs.
//   - No time-based sources: every stream descends from an explicit seed.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Derive one stream per worker
//     with Derive instead of sharing a *rand.Rand.
package rng

import (
	"math"
	"math/rand"
)

// DefaultSeed is used when callers pass seed==0.
const DefaultSeed int64 = 1

// New returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier with the SplitMix64
// finalizer so that neighbouring stream ids give uncorrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Derive creates an independent stream from base and a stream id.
// base.Int63 is consumed once so repeated ids still yield distinct children.
// A nil base uses DefaultSeed as the parent.
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// UnitVector fills dst with a direction drawn uniformly from the unit sphere
// S^(len(dst)−1) (normalised Gaussian draw). Degenerate draws are retried.
func UnitVector(r *rand.Rand, dst []float64) {
	for {
		var sq float64
		for i := range dst {
			dst[i] = r.NormFloat64()
			sq += dst[i] * dst[i]
		}
		if sq > 1e-24 {
			inv := 1 / math.Sqrt(sq)
			for i := range dst {
				dst[i] *= inv
			}
			return
		}
	}
}

// InBall fills dst with a point drawn uniformly from the d-ball of the given
// radius, d = len(dst).
func InBall(r *rand.Rand, dst []float64, radius float64) {
	UnitVector(r, dst)
	s := radius * math.Pow(r.Float64(), 1/float64(len(dst)))
	for i := range dst {
		dst[i] *= s
	}
}

// Uniform fills dst with independent draws from [lo[i], hi[i]).
func Uniform(r *rand.Rand, dst, lo, hi []float64) {
	for i := range dst {
		dst[i] = lo[i] + r.Float64()*(hi[i]-lo[i])
	}
}
