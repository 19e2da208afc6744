// SPDX-License-Identifier: MIT

package metrics

// Outcome labels shared by traversal and sampling metrics.
const (
	OutcomeOK      = "ok"
	OutcomePartial = "partial"
	OutcomeError   = "error"
)

// Recorder receives engine events. Implementations must be safe for
// concurrent use; the engine calls them from whichever goroutine runs the query.
type Recorder interface {
	// ObserveProjection is called once per Newton projection with the number of
	// iterations performed and the terminal error (nil on convergence).
	ObserveProjection(iterations int, err error)

	// ChartCreated is called after a chart is registered; total is the new chart count.
	ChartCreated(total int)

	// ObserveTraversal is called once per traversal with the space kind,
	// an Outcome* label, the stop reason and the number of states produced.
	ObserveTraversal(space, outcome, stop string, states int)

	// ObserveSample is called once per SampleValid call.
	ObserveSample(space string, attempts int, err error)
}

// Nop discards every event.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) ObserveProjection(int, error)                 {}
func (Nop) ChartCreated(int)                             {}
func (Nop) ObserveTraversal(string, string, string, int) {}
func (Nop) ObserveSample(string, int, error)             {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}

	return r
}
