package atlas

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/constraint"
	"github.com/katalvlaran/manifold/matrix"
)

// minHalfspaceNorm skips half-spaces between charts whose anchors project to
// (nearly) the same tangent point.
const minHalfspaceNorm = 1e-9

// eigenMaxIter caps Jacobi rotations in the principal-angle test.
const eigenMaxIter = 200

// Halfspace is the linear cut Normal·u ≤ Offset in a chart's tangent
// coordinates, separating it from chart Neighbor.
type Halfspace struct {
	Neighbor int
	Normal   []float64
	Offset   float64
}

// Contains reports whether u satisfies the cut.
func (h Halfspace) Contains(u []float64) bool {
	return floats.Dot(h.Normal, u) <= h.Offset
}

// Chart is a local tangent-plane parameterisation of the manifold.
// Anchor and bases are immutable; the half-space list grows under mu.
type Chart struct {
	id      int
	anchor  []float64
	tangent *matrix.Dense // n×d
	normal  *matrix.Dense // n×k

	c        *constraint.Constraint
	rho      float64
	epsilon  float64
	cosAlpha float64

	mu         sync.RWMutex
	halfspaces []Halfspace
}

// ID returns the registry index of the chart.
func (ch *Chart) ID() int { return ch.id }

// Anchor returns a copy of x₀.
func (ch *Chart) Anchor() []float64 { return append([]float64(nil), ch.anchor...) }

// Dimension returns d, the tangent dimension.
func (ch *Chart) Dimension() int { return ch.tangent.Cols() }

// Radius returns ρ.
func (ch *Chart) Radius() float64 { return ch.rho }

// TangentBasis returns a copy of Φ.
func (ch *Chart) TangentBasis() *matrix.Dense { return ch.tangent.Clone().(*matrix.Dense) }

// NormalBasis returns a copy of the normal basis at the anchor.
func (ch *Chart) NormalBasis() *matrix.Dense { return ch.normal.Clone().(*matrix.Dense) }

// Halfspaces returns a snapshot of the chart's cuts.
func (ch *Chart) Halfspaces() []Halfspace {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	return append([]Halfspace(nil), ch.halfspaces...)
}

// ToTangent returns u = Φᵀ(x − x₀).
func (ch *Chart) ToTangent(x []float64) ([]float64, error) {
	if err := matrix.ValidateVecLen(x, len(ch.anchor)); err != nil {
		return nil, err
	}
	dx := make([]float64, len(x))
	floats.SubTo(dx, x, ch.anchor)

	return matrix.MatTVec(ch.tangent, dx)
}

// Phi returns the tangent-plane point x₀ + Φu.
func (ch *Chart) Phi(u []float64) ([]float64, error) {
	p, err := matrix.MatVec(ch.tangent, u)
	if err != nil {
		return nil, err
	}
	floats.Add(p, ch.anchor)

	return p, nil
}

// FromTangent retracts tangent coordinates onto the manifold: the affine
// point Phi(u) is projected along the chart's normal space, so
// ToTangent(FromTangent(u)) == u while the retraction succeeds.
func (ch *Chart) FromTangent(u []float64) ([]float64, error) {
	p, err := ch.Phi(u)
	if err != nil {
		return nil, err
	}

	return ch.c.ProjectAlong(p, ch.normal)
}

// InPolytope reports whether ‖u‖ ≤ ρ and u satisfies every half-space.
func (ch *Chart) InPolytope(u []float64) bool {
	if len(u) != ch.Dimension() || floats.Norm(u, 2) > ch.rho {
		return false
	}

	return ch.insideCuts(u)
}

func (ch *Chart) insideCuts(u []float64) bool {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	for _, h := range ch.halfspaces {
		if !h.Contains(u) {
			return false
		}
	}

	return true
}

// Owns reports whether x lies in the chart's validity region: its tangent
// coordinates fall inside the polytope and the tangent-plane image is within ε.
func (ch *Chart) Owns(x []float64) bool {
	u, err := ch.ToTangent(x)
	if err != nil || !ch.InPolytope(u) {
		return false
	}
	p, err := ch.Phi(u)
	if err != nil {
		return false
	}

	return floats.Distance(x, p, 2) <= ch.epsilon
}

// WithinTolerance reports whether the manifold point x is faithfully
// represented by tangent coordinates u:
//   - ‖x − Phi(u)‖ ≤ ε, and
//   - the largest principal angle between the chart normal space and the
//     normal space at x is ≤ α.
//
// The cosine of the largest principal angle is the smallest singular value
// of M = Nᵀ_chart·N_x, read as √λ_min(MᵀM) from matrix.Eigen.
// Any numeric failure (singular Jacobian at x, non-convergent Eigen) is false.
func (ch *Chart) WithinTolerance(u, x []float64) bool {
	p, err := ch.Phi(u)
	if err != nil || len(p) != len(x) || floats.Distance(x, p, 2) > ch.epsilon {
		return false
	}
	cos, err := ch.normalCosine(x)
	if err != nil {
		return false
	}

	return cos >= ch.cosAlpha
}

func (ch *Chart) normalCosine(x []float64) (float64, error) {
	nx, err := ch.c.NormalBasis(x)
	if err != nil {
		return 0, err
	}
	nt, err := matrix.Transpose(ch.normal)
	if err != nil {
		return 0, err
	}
	M, err := matrix.Mul(nt, nx)
	if err != nil {
		return 0, err
	}
	Mt, err := matrix.Transpose(M)
	if err != nil {
		return 0, err
	}
	G, err := matrix.Gram(Mt) // MᵀM
	if err != nil {
		return 0, err
	}
	eigs, _, err := matrix.Eigen(G, matrix.DefaultEpsilon, eigenMaxIter)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(math.Max(floats.Min(eigs), 0)), nil
}

// separatingCut returns the half-space of ch against other:
// v = Φᵀ(x₀ᵒ − x₀), v·u ≤ ‖v‖²/2. ok is false when ‖v‖ is negligible.
func (ch *Chart) separatingCut(other *Chart) (Halfspace, bool) {
	v, err := ch.ToTangent(other.anchor)
	if err != nil {
		return Halfspace{}, false
	}
	nv := floats.Norm(v, 2)
	if nv < minHalfspaceNorm {
		return Halfspace{}, false
	}

	return Halfspace{Neighbor: other.id, Normal: v, Offset: nv * nv / 2}, true
}

func (ch *Chart) addHalfspace(h Halfspace) {
	ch.mu.Lock()
	ch.halfspaces = append(ch.halfspaces, h)
	ch.mu.Unlock()
}

// link installs the mutual cuts between a and b and reports whether any was added.
func link(a, b *Chart) bool {
	linked := false
	if h, ok := a.separatingCut(b); ok {
		a.addHalfspace(h)
		linked = true
	}
	if h, ok := b.separatingCut(a); ok {
		b.addHalfspace(h)
		linked = true
	}

	return linked
}
