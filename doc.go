// Package manifold is a toolkit for moving through constrained state
// spaces: sets of points x ∈ Rⁿ that satisfy an implicit equation F(x) = 0
// with F: Rⁿ → Rᵏ.
//
// What is in the box?
//
//	A small, concurrency-aware library plus a CLI that brings together:
//		• Constraints: residuals, Jacobians (analytic or numeric) and a
//		  Newton minimum-norm projection onto F(x) = 0
//		• Bases: tangent and normal spaces from a Householder QR of Jᵀ
//		• Charts and atlases: local tangent parameterizations built on
//		  demand, carved into polytopes by their neighbours
//		• State spaces: projected, null-space and atlas representations
//		  with a shared bounded-step traversal loop and valid-state samplers
//		• Problems: a registry of ready-made surfaces and queries
//
// Layout:
//
//	matrix/        dense linear algebra kernel (QR, LU, symmetric eigen)
//	constraint/    F, J, projection, tangent/normal bases
//	atlas/         Chart, Atlas, frontier estimation and chart sampling
//	space/         StateSpace implementations, Traverse, ExpandPath
//	problems/      built-in problems (sphere, torus, plane, circle, sphere-wall)
//	rng/           seeded streams and stream derivation for parallel samplers
//	metrics/       Recorder interface with a Prometheus implementation
//	cmd/manifold   traverse, sample and problems subcommands
//
// Quick example:
//
//	c, _ := constraint.New(problems.Sphere())
//	sp, _ := space.New(space.KindAtlas, c)
//	a, _ := sp.NewState([]float64{1, 0, 0})
//	b, _ := sp.NewState([]float64{0, 1, 0})
//	m, err := sp.Traverse(a, b) // m.States are ≤ δ apart and on the sphere
//
//	go install github.com/katalvlaran/manifold/cmd/manifold@latest
package manifold
