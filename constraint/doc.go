// Package constraint evaluates implicit equality constraints F(x)=0 over Rⁿ
// and projects ambient points onto the solution manifold.
//
// A Function supplies the residual F: Rⁿ→Rᵏ and its k×n Jacobian; Funcs builds
// one from closures and falls back to central finite differences when no
// analytic Jacobian is given. Constraint wraps a Function with the numeric
// policy (tolerance, iteration caps) and provides:
//
//   - Project: minimum-norm Newton iteration x ← x − Jᵀ(JJᵀ)⁻¹F(x).
//   - Residual / ResidualNorm / IsSatisfied.
//   - TangentBasis / NormalBasis: orthonormal splits of Rⁿ at a point,
//     computed from the QR factorisation of Jᵀ.
//
// Every loop is capped; a projection that cannot converge fails with
// ErrProjectionDivergence instead of returning an off-manifold point.
// A Constraint is immutable after New and safe for concurrent use.
package constraint
