package atlas

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/manifold/metrics"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultRho is the chart validity radius in tangent coordinates.
	DefaultRho = 0.5

	// DefaultAlpha is the largest admissible angle between the chart normal
	// space and the normal space at a point it parameterises.
	DefaultAlpha = math.Pi / 8

	// DefaultEpsilon is the largest admissible distance between a manifold
	// point and its tangent-plane image.
	DefaultEpsilon = 0.2

	// DefaultExploration is the probability of frontier-biased chart sampling.
	DefaultExploration = 0.5

	// DefaultMaxChartsPerExtension bounds chart creation within one traversal.
	DefaultMaxChartsPerExtension = 200

	// DefaultFrontierSamples is the number of boundary directions probed per
	// chart when estimating the frontier.
	DefaultFrontierSamples = 64
)

const (
	panicRhoInvalid         = "atlas: WithRho: rho must be finite and > 0"
	panicAlphaInvalid       = "atlas: WithAlpha: alpha must be in (0, π/2)"
	panicEpsilonInvalid     = "atlas: WithEpsilon: epsilon must be finite and > 0"
	panicExplorationInvalid = "atlas: WithExploration: exploration must be in [0, 1)"
	panicMaxChartsInvalid   = "atlas: WithMaxChartsPerExtension: n must be > 0"
	panicFrontierInvalid    = "atlas: WithFrontierSamples: n must be > 0"
)

// Option configures an Atlas. Constructors panic on nonsensical values.
type Option func(*Options)

// Options holds atlas parameters.
type Options struct {
	rho             float64
	alpha           float64
	epsilon         float64
	exploration     float64
	maxCharts       int
	frontierSamples int
	seed            int64
	logger          *zap.Logger
	recorder        metrics.Recorder
}

func WithRho(rho float64) Option {
	if !(rho > 0) || math.IsInf(rho, 0) {
		panic(panicRhoInvalid)
	}

	return func(o *Options) { o.rho = rho }
}

func WithAlpha(alpha float64) Option {
	if !(alpha > 0 && alpha < math.Pi/2) {
		panic(panicAlphaInvalid)
	}

	return func(o *Options) { o.alpha = alpha }
}

func WithEpsilon(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.epsilon = eps }
}

// WithExploration sets the probability that SampleChart prefers frontier charts.
func WithExploration(p float64) Option {
	if !(p >= 0 && p < 1) {
		panic(panicExplorationInvalid)
	}

	return func(o *Options) { o.exploration = p }
}

func WithMaxChartsPerExtension(n int) Option {
	if n <= 0 {
		panic(panicMaxChartsInvalid)
	}

	return func(o *Options) { o.maxCharts = n }
}

func WithFrontierSamples(n int) Option {
	if n <= 0 {
		panic(panicFrontierInvalid)
	}

	return func(o *Options) { o.frontierSamples = n }
}

// WithSeed seeds the boundary directions used for frontier estimation.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(o *Options) { o.recorder = metrics.OrNop(r) }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		rho:             DefaultRho,
		alpha:           DefaultAlpha,
		epsilon:         DefaultEpsilon,
		exploration:     DefaultExploration,
		maxCharts:       DefaultMaxChartsPerExtension,
		frontierSamples: DefaultFrontierSamples,
		logger:          zap.NewNop(),
		recorder:        metrics.Nop{},
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
