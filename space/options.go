package space

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/manifold/atlas"
	"github.com/katalvlaran/manifold/metrics"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultDelta is the largest ambient displacement of one traversal step.
	DefaultDelta = 0.02

	// DefaultLambda bounds a single step at λδ and the total travel at
	// λ·dist(from, to) before a traversal is declared divergent.
	DefaultLambda = 2.0

	// DefaultMaxSteps caps the number of steps of one traversal.
	DefaultMaxSteps = 10000

	// DefaultSampleRetries caps candidate draws per SampleValid call.
	DefaultSampleRetries = 100

	// DefaultBound is the half-width of the default ambient box [-20, 20]ⁿ.
	DefaultBound = 20.0
)

const (
	panicDeltaInvalid   = "space: WithDelta: delta must be finite and > 0"
	panicLambdaInvalid  = "space: WithLambda: lambda must be finite and ≥ 1"
	panicStepsInvalid   = "space: WithMaxSteps: n must be > 0"
	panicRetriesInvalid = "space: WithSampleRetries: n must be > 0"
)

// ValidityFunc is an extra state-validity predicate (e.g. obstacles).
type ValidityFunc func(x []float64) bool

// Option configures a state space. Constructors panic on nonsensical values;
// bounds are checked against the constraint in New.
type Option func(*Options)

// Options holds state-space parameters.
type Options struct {
	delta       float64
	lambda      float64
	maxSteps    int
	retries     int
	lo, hi      []float64
	validity    ValidityFunc
	logger      *zap.Logger
	recorder    metrics.Recorder
	atlasOpts   []atlas.Option
	atlasShared *atlas.Atlas
}

func WithDelta(delta float64) Option {
	if !(delta > 0) || math.IsInf(delta, 0) {
		panic(panicDeltaInvalid)
	}

	return func(o *Options) { o.delta = delta }
}

func WithLambda(lambda float64) Option {
	if !(lambda >= 1) || math.IsInf(lambda, 0) {
		panic(panicLambdaInvalid)
	}

	return func(o *Options) { o.lambda = lambda }
}

func WithMaxSteps(n int) Option {
	if n <= 0 {
		panic(panicStepsInvalid)
	}

	return func(o *Options) { o.maxSteps = n }
}

func WithSampleRetries(n int) Option {
	if n <= 0 {
		panic(panicRetriesInvalid)
	}

	return func(o *Options) { o.retries = n }
}

// WithBounds sets the ambient bounding box. Both slices must have the
// ambient dimension; New reports ErrDimensionMismatch otherwise.
func WithBounds(lo, hi []float64) Option {
	lo = append([]float64(nil), lo...)
	hi = append([]float64(nil), hi...)

	return func(o *Options) { o.lo, o.hi = lo, hi }
}

// WithValidity adds a validity predicate on top of bounds and the constraint.
func WithValidity(fn ValidityFunc) Option {
	return func(o *Options) { o.validity = fn }
}

// WithLogger sets the logger; nil keeps the no-op logger. The atlas of an
// AtlasSpace inherits it.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder routes traversal and sampling events to r. The atlas of an
// AtlasSpace inherits it.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *Options) { o.recorder = metrics.OrNop(r) }
}

// WithAtlasOptions forwards options to the atlas built by NewAtlas.
func WithAtlasOptions(opts ...atlas.Option) Option {
	return func(o *Options) { o.atlasOpts = append(o.atlasOpts, opts...) }
}

// WithAtlas makes NewAtlas reuse an existing atlas (built over the same
// constraint) instead of creating one; WithAtlasOptions is then ignored.
func WithAtlas(a *atlas.Atlas) Option {
	return func(o *Options) { o.atlasShared = a }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		delta:    DefaultDelta,
		lambda:   DefaultLambda,
		maxSteps: DefaultMaxSteps,
		retries:  DefaultSampleRetries,
		logger:   zap.NewNop(),
		recorder: metrics.Nop{},
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
