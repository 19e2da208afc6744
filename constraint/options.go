package constraint

import (
	"math"

	"github.com/katalvlaran/manifold/metrics"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the residual norm ‖F(x)‖ accepted as "on manifold".
	DefaultTolerance = 1e-4

	// DefaultMaxIterations caps Newton steps per projection.
	DefaultMaxIterations = 50

	// DefaultDivergenceWindow is the number of consecutive residual increases
	// that abort a projection.
	DefaultDivergenceWindow = 3

	// DefaultFiniteDifferenceStep is the central-difference step used by Funcs
	// when no analytic Jacobian is supplied.
	DefaultFiniteDifferenceStep = 1e-6
)

// ---------- Internal panic messages ----------

const (
	panicToleranceInvalid  = "constraint: WithTolerance: tol must be finite and > 0"
	panicIterationsInvalid = "constraint: WithMaxIterations: n must be > 0"
	panicWindowInvalid     = "constraint: WithDivergenceWindow: n must be > 0"
	panicStepInvalid       = "constraint: WithFiniteDifferenceStep: h must be finite and > 0"
)

// Option mutates Options. Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options holds the numeric policy of a Constraint.
type Options struct {
	tolerance        float64
	maxIterations    int
	divergenceWindow int
	fdStep           float64
	recorder         metrics.Recorder
}

// WithTolerance sets the residual norm accepted as satisfied.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithMaxIterations caps Newton steps per projection.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicIterationsInvalid)
	}

	return func(o *Options) { o.maxIterations = n }
}

// WithDivergenceWindow sets how many consecutive residual increases abort a projection.
func WithDivergenceWindow(n int) Option {
	if n <= 0 {
		panic(panicWindowInvalid)
	}

	return func(o *Options) { o.divergenceWindow = n }
}

// WithFiniteDifferenceStep sets the central-difference step applied to
// Funcs values that carry no analytic Jacobian and no Step of their own.
func WithFiniteDifferenceStep(h float64) Option {
	if !(h > 0) || math.IsInf(h, 0) {
		panic(panicStepInvalid)
	}

	return func(o *Options) { o.fdStep = h }
}

// WithRecorder routes projection events to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *Options) { o.recorder = metrics.OrNop(r) }
}

func defaultOptions() Options {
	return Options{
		tolerance:        DefaultTolerance,
		maxIterations:    DefaultMaxIterations,
		divergenceWindow: DefaultDivergenceWindow,
		fdStep:           DefaultFiniteDifferenceStep,
		recorder:         metrics.Nop{},
	}
}

func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
