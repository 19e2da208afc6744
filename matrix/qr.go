// SPDX-License-Identifier: MIT

package matrix

import "math"

// QR computes the full Householder factorisation A = Q·R of an m×n matrix with m ≥ n.
//
// Implementation:
//   - Stage 1: Validate m non-nil and Rows ≥ Cols; clone A; init Q to identity (m×m).
//   - Stage 2: For k=0..n-1, build the reflector v for column k below the
//     diagonal and apply H = I − τvvᵀ to the working copy (forming R) and
//     from the right to Q (so that Q = H₀H₁…Hₙ₋₁).
//
// Behavior highlights:
//   - Q is square and orthogonal; its first n columns span range(A) when A
//     has full column rank, the remaining m−n columns span the orthogonal
//     complement. For A = Jᵀ this splits ambient space into normal and
//     tangent directions.
//   - R is m×n upper-trapezoidal; |R[k,k]| reveals rank deficiency.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wide input).
//
// Determinism:
//   - Fixed k→{i,j} visitation.
//
// Complexity:
//   - Time O(m²·n), Space O(m²).
func QR(a Matrix) (*Dense, *Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	if a.Rows() < a.Cols() {
		return nil, nil, matrixErrorf(opQR, ErrDimensionMismatch)
	}
	src, err := asDense(a)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	R := src.Clone().(*Dense)
	m, n := R.r, R.c
	Q, err := NewIdentity(m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	v := make([]float64, m) // Householder vector, reused across columns

	var (
		i, j, k                int
		norm, alpha, beta, tau float64
		sum, val               float64
	)
	for k = 0; k < n; k++ {
		// Norm of R[k:m, k]
		norm = 0
		for i = k; i < m; i++ {
			val = R.data[i*n+k]
			norm += val * val
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue // zero column: nothing to reflect
		}
		// alpha = -sign(R[k,k])·norm avoids cancellation in v[k]
		alpha = -math.Copysign(norm, R.data[k*n+k])
		for i = 0; i < m; i++ {
			v[i] = 0
		}
		for i = k; i < m; i++ {
			v[i] = R.data[i*n+k]
		}
		v[k] -= alpha
		beta = 0
		for i = k; i < m; i++ {
			beta += v[i] * v[i]
		}
		if beta == 0 {
			continue
		}
		tau = 2.0 / beta

		// R ← H·R
		for j = k; j < n; j++ {
			sum = 0
			for i = k; i < m; i++ {
				sum += v[i] * R.data[i*n+j]
			}
			for i = k; i < m; i++ {
				R.data[i*n+j] -= tau * v[i] * sum
			}
		}
		// Q ← Q·H
		for i = 0; i < m; i++ {
			sum = 0
			for j = k; j < m; j++ {
				sum += Q.data[i*m+j] * v[j]
			}
			for j = k; j < m; j++ {
				Q.data[i*m+j] -= tau * sum * v[j]
			}
		}
	}

	return Q, R, nil
}
