package space

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/manifold/atlas"
)

// State is a point of the ambient space plus, in the atlas representation,
// a weak reference to the chart it was last resolved in. The reference is a
// lookup hint only; an invalid or stale Ref is re-resolved on use.
type State struct {
	X     []float64
	Chart atlas.Ref
}

// Clone returns a deep copy.
func (s State) Clone() State {
	return State{X: append([]float64(nil), s.X...), Chart: s.Chart}
}

// Equal reports whether both states have identical coordinates.
// The chart reference is advisory and not compared.
func (s State) Equal(o State) bool {
	return len(s.X) == len(o.X) && floats.Equal(s.X, o.X)
}

// StopReason tells why a traversal ended.
type StopReason string

const (
	StopReached   StopReason = "reached"
	StopInvalid   StopReason = "invalid"
	StopStepLimit StopReason = "step-limit"
	StopError     StopReason = "error"
)

// Motion is the result of Traverse. States always start at the source when
// non-empty; Complete is true only when the last state is the target.
type Motion struct {
	States   []State
	Complete bool
	Stop     StopReason
}

// Last returns the final state and false for an empty motion.
func (m Motion) Last() (State, bool) {
	if len(m.States) == 0 {
		return State{}, false
	}

	return m.States[len(m.States)-1], true
}
