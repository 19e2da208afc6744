// Package space exposes a constraint manifold as a state space a
// sampling-based planner can drive: sample valid states, measure distances,
// interpolate, and connect two states with a fine, constraint-satisfying
// motion.
//
// Three representations share one StateSpace interface:
//
//   - Projected: every traversal step re-projects the chord step with the
//     full Newton projection.
//   - Nullspace: steps follow the Jacobian null space at the current point,
//     then one corrective projection.
//   - AtlasSpace: steps are taken in chart tangent coordinates and retracted
//     by the chart; charts are created and refined on demand.
//
// Traverse returns a Motion. A complete motion ends exactly at the target;
// anything else is a partial motion whose States are the validated prefix.
// Numeric failures (projection divergence, chart explosion, divergent steps)
// are returned as *TraversalError together with that prefix; they fail one
// query, never the session.
package space
