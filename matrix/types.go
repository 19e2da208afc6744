// SPDX-License-Identifier: MIT

package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid and ErrNaNInf for non-finite v.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Numeric defaults shared by kernels.
const (
	// DefaultEpsilon is the tolerance used by symmetry checks.
	DefaultEpsilon = 1e-9

	// SingularTolerance is the relative pivot threshold below which LU reports
	// ErrSingular: |pivot| ≤ SingularTolerance · max|a_ij|.
	SingularTolerance = 1e-12
)
