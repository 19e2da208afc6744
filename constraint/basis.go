package constraint

import (
	"fmt"
	"math"

	"github.com/katalvlaran/manifold/matrix"
)

// rankTolerance scales the largest |R[i,i]| to decide rank deficiency of Jᵀ.
const rankTolerance = 1e-10

// Bases returns orthonormal bases of the tangent space (n×(n−k)) and the
// normal space (n×k) of the manifold at x.
//
// Implementation:
//   - Stage 1: J ← JacobianAt(x); A ← Jᵀ (n×k).
//   - Stage 2: full Householder QR of A; the first k columns of Q span
//     range(Jᵀ) (normal), the last n−k span null(J) (tangent).
//   - Stage 3: reject when any |R[i,i]| ≤ rankTolerance · max|R[j,j]|.
//
// Errors:
//   - ErrDimensionMismatch, ErrNonFinite.
//   - ErrProjectionDivergence wrapping ErrSingularJacobian on rank deficiency.
//
// Complexity: O(n²k).
func (c *Constraint) Bases(x []float64) (tangent, normal *matrix.Dense, err error) {
	J, err := c.JacobianAt(x)
	if err != nil {
		return nil, nil, err
	}
	Jt, err := matrix.Transpose(J)
	if err != nil {
		return nil, nil, err
	}
	Q, R, err := matrix.QR(Jt)
	if err != nil {
		return nil, nil, err
	}

	var (
		i          int
		d, maxDiag float64
		diag       = make([]float64, c.k)
	)
	for i = 0; i < c.k; i++ {
		d, _ = R.At(i, i)
		diag[i] = math.Abs(d)
		if diag[i] > maxDiag {
			maxDiag = diag[i]
		}
	}
	for i = 0; i < c.k; i++ {
		if diag[i] <= rankTolerance*maxDiag || maxDiag == 0 {
			return nil, nil, fmt.Errorf("constraint: Bases: rank %d < %d: %w: %w",
				i, c.k, ErrProjectionDivergence, ErrSingularJacobian)
		}
	}

	if normal, err = Q.SliceCols(0, c.k); err != nil {
		return nil, nil, err
	}
	if tangent, err = Q.SliceCols(c.k, c.n); err != nil {
		return nil, nil, err
	}

	return tangent, normal, nil
}

// TangentBasis returns an n×(n−k) orthonormal basis of null(J(x)).
func (c *Constraint) TangentBasis(x []float64) (*matrix.Dense, error) {
	t, _, err := c.Bases(x)
	return t, err
}

// NormalBasis returns an n×k orthonormal basis of range(J(x)ᵀ).
func (c *Constraint) NormalBasis(x []float64) (*matrix.Dense, error) {
	_, nb, err := c.Bases(x)
	return nb, err
}

// ProjectTangent returns the orthogonal projection of the ambient vector v
// onto the tangent space at x.
func (c *Constraint) ProjectTangent(x, v []float64) ([]float64, error) {
	if err := c.checkLen("ProjectTangent", v); err != nil {
		return nil, err
	}
	T, err := c.TangentBasis(x)
	if err != nil {
		return nil, err
	}
	coords, err := matrix.MatTVec(T, v)
	if err != nil {
		return nil, err
	}

	return matrix.MatVec(T, coords)
}
