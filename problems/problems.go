package problems

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/manifold/constraint"
	"github.com/katalvlaran/manifold/space"
)

var (
	// ErrUnknownProblem indicates a name that is not registered.
	ErrUnknownProblem = errors.New("problems: unknown problem")

	// ErrDuplicateProblem indicates Register was called twice for one name.
	ErrDuplicateProblem = errors.New("problems: duplicate problem")

	// ErrInvalidProblem indicates a problem missing its function or endpoints.
	ErrInvalidProblem = errors.New("problems: invalid problem")
)

// Problem is a constraint with a fixed query.
type Problem struct {
	Name        string
	Description string
	Function    constraint.Function
	Start, Goal []float64
	Via         [][]float64        // optional intermediate waypoints
	Validity    space.ValidityFunc // nil accepts every on-manifold state
}

// Waypoints returns Start, every Via point, then Goal.
func (p Problem) Waypoints() [][]float64 {
	out := make([][]float64, 0, len(p.Via)+2)
	out = append(out, p.Start)
	out = append(out, p.Via...)

	return append(out, p.Goal)
}

// Constraint wraps the problem's function.
func (p Problem) Constraint(opts ...constraint.Option) (*constraint.Constraint, error) {
	return constraint.New(p.Function, opts...)
}

// SpaceOptions returns the options that carry the problem into a state space.
func (p Problem) SpaceOptions() []space.Option {
	if p.Validity == nil {
		return nil
	}

	return []space.Option{space.WithValidity(p.Validity)}
}

var (
	mu       sync.RWMutex
	registry = map[string]Problem{}
)

// Register adds p under p.Name.
func Register(p Problem) error {
	if p.Name == "" || p.Function == nil {
		return fmt.Errorf("problems: %q: %w", p.Name, ErrInvalidProblem)
	}
	n := p.Function.AmbientDimension()
	for _, w := range p.Waypoints() {
		if len(w) != n {
			return fmt.Errorf("problems: %q: waypoints must have %d coordinates: %w", p.Name, n, ErrInvalidProblem)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[p.Name]; ok {
		return fmt.Errorf("problems: %q: %w", p.Name, ErrDuplicateProblem)
	}
	registry[p.Name] = p

	return nil
}

// Lookup returns the problem registered under name.
func Lookup(name string) (Problem, error) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := registry[name]
	if !ok {
		return Problem{}, fmt.Errorf("problems: %q: %w", name, ErrUnknownProblem)
	}

	return p, nil
}

// Names returns the registered names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

func mustRegister(p Problem) {
	if err := Register(p); err != nil {
		panic(err)
	}
}
