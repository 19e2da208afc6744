package matrix

import (
	"fmt"
	"math"
)

// LUFactors holds a row-pivoted Doolittle factorisation P·A = L·U packed into
// a single n×n buffer (unit-lower L below the diagonal, U on and above it).
type LUFactors struct {
	n    int
	lu   []float64 // packed factors, row-major
	perm []int     // perm[i] = original row placed at position i
}

// LU factorises a square matrix with partial (row) pivoting.
//
// Implementation:
//   - Stage 1: ValidateSquare; copy A into the packed buffer.
//   - Stage 2: for each column k pick the row with the largest |a[i,k]|, swap,
//     then eliminate below the pivot storing multipliers in place.
//   - Stage 3: reject pivots ≤ SingularTolerance · max|a_ij| as ErrSingular.
//
// Behavior highlights:
//   - Pivot choice is deterministic (first maximal row wins on ties).
//   - The relative threshold catches near-singular systems such as a
//     Jacobian evaluated at a critical point of the constraint.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func LU(m Matrix) (*LUFactors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := src.r
	f := &LUFactors{n: n, lu: make([]float64, n*n), perm: make([]int, n)}
	copy(f.lu, src.data)

	// Scale for the relative singularity threshold.
	var scale float64
	for _, v := range f.lu {
		if a := math.Abs(v); a > scale {
			scale = a
		}
	}
	if scale == 0 {
		return nil, matrixErrorf(opLU, ErrSingular)
	}
	threshold := SingularTolerance * scale

	var (
		i, j, k, p int
		maxAbs, a  float64
		mult       float64
	)
	for i = 0; i < n; i++ {
		f.perm[i] = i
	}
	for k = 0; k < n; k++ {
		// Partial pivot: largest magnitude in column k at or below the diagonal.
		p, maxAbs = k, math.Abs(f.lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if a = math.Abs(f.lu[i*n+k]); a > maxAbs {
				p, maxAbs = i, a
			}
		}
		if maxAbs <= threshold {
			return nil, matrixErrorf(opLU, fmt.Errorf("pivot %d (|%g| ≤ %g): %w", k, maxAbs, threshold, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				f.lu[k*n+j], f.lu[p*n+j] = f.lu[p*n+j], f.lu[k*n+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
		}
		// Eliminate below the pivot.
		for i = k + 1; i < n; i++ {
			mult = f.lu[i*n+k] / f.lu[k*n+k]
			f.lu[i*n+k] = mult
			if mult == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				f.lu[i*n+j] -= mult * f.lu[k*n+j]
			}
		}
	}

	return f, nil
}

// Solve returns x with A·x = b using the stored factors.
//
// Implementation:
//   - Stage 1: permute b.
//   - Stage 2: forward substitution with unit-lower L (top-down).
//   - Stage 3: backward substitution with U (bottom-up).
//
// Errors:
//   - ErrDimensionMismatch when len(b) != n.
//
// Complexity:
//   - Time O(n²), Space O(n).
func (f *LUFactors) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := f.n
	x := make([]float64, n)
	var (
		i, j int
		sum  float64
	)
	for i = 0; i < n; i++ {
		x[i] = b[f.perm[i]]
	}
	for i = 0; i < n; i++ {
		sum = x[i]
		for j = 0; j < i; j++ {
			sum -= f.lu[i*n+j] * x[j]
		}
		x[i] = sum
	}
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for j = i + 1; j < n; j++ {
			sum -= f.lu[i*n+j] * x[j]
		}
		x[i] = sum / f.lu[i*n+i]
	}

	return x, nil
}

// Solve is a one-shot helper: factorise a and solve a·x = b.
// Complexity: O(n³).
func Solve(a Matrix, b []float64) ([]float64, error) {
	f, err := LU(a)
	if err != nil {
		return nil, err
	}

	return f.Solve(b)
}
