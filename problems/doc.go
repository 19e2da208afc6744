// Package problems is a registry of named constrained problems: a constraint
// function plus a fixed start/goal pair, optional bounds and an optional
// validity predicate. The CLI and tests resolve problems by name.
package problems
