// Package metrics records engine activity: Newton projections, chart
// creation, traversal outcomes and sampling attempts.
//
// Engine packages depend only on the Recorder interface; Nop is the default
// and Prometheus exports the same events as client_golang collectors on a
// caller-supplied registry.
package metrics
