// Package atlas covers a constraint manifold with local charts and grows the
// cover lazily as traversals and samplers reach new regions.
//
// A Chart is anchored at an on-manifold point x₀ and parameterises its
// neighbourhood through the tangent plane: u = Φᵀ(x−x₀), x ≈ Project(x₀+Φu).
// Its validity region is the tangent ball of radius ρ cut by half-spaces
// shared with neighbouring charts, so adjacent charts split their overlap.
//
// An Atlas is the concurrent registry of charts. Lookups take a read lock;
// chart creation (projection and bases are computed outside the lock) is a
// single write-locked critical section that re-checks ownership before
// registering, so concurrent callers never duplicate a chart for the same
// region. Charts are never removed and Ref values name them weakly
// (ID plus the registry generation at which the ownership was observed).
//
// Per-traversal growth is bounded through an Extension: once one traversal
// creates more than MaxChartsPerExtension charts the atlas reports
// ErrChartExplosion.
package atlas
