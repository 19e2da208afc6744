// Package matrix provides the dense linear-algebra kernel used by the
// constraint, atlas and space packages.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors.
//   - Products (Mul, MatVec, MatTVec, Gram) and Transpose.
//   - LU factorisation with partial pivoting and a linear Solve, used by the
//     Newton projection to apply (JJᵀ)⁻¹.
//   - Householder QR for tall or square matrices, used to split ambient space
//     into the tangent (null) space and normal (row) space of a Jacobian.
//   - Jacobi Eigen for symmetric matrices, used to measure principal angles
//     between normal spaces.
//
// All kernels validate shapes up front and return sentinel errors wrapped with
// an operation tag; nothing panics on user input.
package matrix
