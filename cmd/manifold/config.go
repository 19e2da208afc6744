package main

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/manifold/atlas"
	"github.com/katalvlaran/manifold/constraint"
	"github.com/katalvlaran/manifold/metrics"
	"github.com/katalvlaran/manifold/problems"
	"github.com/katalvlaran/manifold/space"
)

// Config is the YAML configuration surface. Zero-valued numeric fields in a
// file keep the library defaults.
type Config struct {
	Problem string `yaml:"problem"`
	Links   int    `yaml:"links"` // chain problem only
	Space   string `yaml:"space"`
	Seed    int64  `yaml:"seed"`

	Tolerance float64 `yaml:"tolerance"`
	Delta     float64 `yaml:"delta"`
	Lambda    float64 `yaml:"lambda"`
	MaxSteps  int     `yaml:"max_steps"`
	Bound     float64 `yaml:"bound"`

	Atlas AtlasConfig `yaml:"atlas"`
}

// AtlasConfig holds the chart knobs.
type AtlasConfig struct {
	Rho         float64 `yaml:"rho"`
	Alpha       float64 `yaml:"alpha"`
	Epsilon     float64 `yaml:"epsilon"`
	Exploration float64 `yaml:"exploration"`
	MaxCharts   int     `yaml:"max_charts"`
}

// DefaultConfig mirrors the library defaults.
func DefaultConfig() Config {
	return Config{
		Problem:   "sphere",
		Links:     problems.DefaultChainLinks,
		Space:     string(space.KindAtlas),
		Tolerance: constraint.DefaultTolerance,
		Delta:     space.DefaultDelta,
		Lambda:    space.DefaultLambda,
		MaxSteps:  space.DefaultMaxSteps,
		Bound:     space.DefaultBound,
		Atlas: AtlasConfig{
			Rho:         atlas.DefaultRho,
			Alpha:       atlas.DefaultAlpha,
			Epsilon:     atlas.DefaultEpsilon,
			Exploration: atlas.DefaultExploration,
			MaxCharts:   atlas.DefaultMaxChartsPerExtension,
		},
	}
}

// LoadConfig reads path over DefaultConfig. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// registerFlags declares the flags that override Config fields.
func registerFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String("problem", d.Problem, "problem name (see `manifold problems`)")
	fs.Int("links", d.Links, "link count of the chain problem")
	fs.String("space", d.Space, "representation: projected, nullspace or atlas")
	fs.Int64("seed", d.Seed, "random seed (0 uses the default seed)")
	fs.Float64("tolerance", d.Tolerance, "projection tolerance ‖F(x)‖")
	fs.Float64("delta", d.Delta, "largest traversal step")
	fs.Float64("lambda", d.Lambda, "divergence factor for steps and total travel")
	fs.Int("max-steps", d.MaxSteps, "step cap per traversal")
	fs.Float64("bound", d.Bound, "half-width of the ambient bounding box")
	fs.Float64("rho", d.Atlas.Rho, "atlas chart radius")
	fs.Float64("alpha", d.Atlas.Alpha, "atlas normal-angle tolerance (radians)")
	fs.Float64("epsilon", d.Atlas.Epsilon, "atlas tangent-plane distance tolerance")
	fs.Float64("exploration", d.Atlas.Exploration, "atlas frontier sampling bias in [0,1)")
	fs.Int("max-charts", d.Atlas.MaxCharts, "atlas chart budget per traversal")
}

// applyFlags copies explicitly set flags over the loaded configuration.
func (c *Config) applyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}
	set("problem", func() (e error) { c.Problem, e = fs.GetString("problem"); return })
	set("links", func() (e error) { c.Links, e = fs.GetInt("links"); return })
	set("space", func() (e error) { c.Space, e = fs.GetString("space"); return })
	set("seed", func() (e error) { c.Seed, e = fs.GetInt64("seed"); return })
	set("tolerance", func() (e error) { c.Tolerance, e = fs.GetFloat64("tolerance"); return })
	set("delta", func() (e error) { c.Delta, e = fs.GetFloat64("delta"); return })
	set("lambda", func() (e error) { c.Lambda, e = fs.GetFloat64("lambda"); return })
	set("max-steps", func() (e error) { c.MaxSteps, e = fs.GetInt("max-steps"); return })
	set("bound", func() (e error) { c.Bound, e = fs.GetFloat64("bound"); return })
	set("rho", func() (e error) { c.Atlas.Rho, e = fs.GetFloat64("rho"); return })
	set("alpha", func() (e error) { c.Atlas.Alpha, e = fs.GetFloat64("alpha"); return })
	set("epsilon", func() (e error) { c.Atlas.Epsilon, e = fs.GetFloat64("epsilon"); return })
	set("exploration", func() (e error) { c.Atlas.Exploration, e = fs.GetFloat64("exploration"); return })
	set("max-charts", func() (e error) { c.Atlas.MaxCharts, e = fs.GetInt("max-charts"); return })

	return err
}

// Validate rejects values the option constructors would panic on.
func (c Config) Validate() error {
	switch {
	case c.Links < 1:
		return fmt.Errorf("config: links must be ≥ 1, got %d", c.Links)
	case !(c.Tolerance > 0):
		return fmt.Errorf("config: tolerance must be > 0, got %g", c.Tolerance)
	case !(c.Delta > 0):
		return fmt.Errorf("config: delta must be > 0, got %g", c.Delta)
	case !(c.Lambda >= 1):
		return fmt.Errorf("config: lambda must be ≥ 1, got %g", c.Lambda)
	case c.MaxSteps <= 0:
		return fmt.Errorf("config: max_steps must be > 0, got %d", c.MaxSteps)
	case !(c.Bound > 0):
		return fmt.Errorf("config: bound must be > 0, got %g", c.Bound)
	case !(c.Atlas.Rho > 0):
		return fmt.Errorf("config: atlas.rho must be > 0, got %g", c.Atlas.Rho)
	case !(c.Atlas.Alpha > 0 && c.Atlas.Alpha < math.Pi/2):
		return fmt.Errorf("config: atlas.alpha must be in (0, π/2), got %g", c.Atlas.Alpha)
	case !(c.Atlas.Epsilon > 0):
		return fmt.Errorf("config: atlas.epsilon must be > 0, got %g", c.Atlas.Epsilon)
	case !(c.Atlas.Exploration >= 0 && c.Atlas.Exploration < 1):
		return fmt.Errorf("config: atlas.exploration must be in [0, 1), got %g", c.Atlas.Exploration)
	case c.Atlas.MaxCharts <= 0:
		return fmt.Errorf("config: atlas.max_charts must be > 0, got %d", c.Atlas.MaxCharts)
	}

	return nil
}

// Build resolves the problem and constructs the configured state space.
func (c Config) Build(logger *zap.Logger, rec metrics.Recorder) (problems.Problem, space.StateSpace, error) {
	if err := c.Validate(); err != nil {
		return problems.Problem{}, nil, err
	}
	p, err := c.problem()
	if err != nil {
		return problems.Problem{}, nil, err
	}
	kind, err := space.ParseKind(c.Space)
	if err != nil {
		return p, nil, err
	}
	cons, err := p.Constraint(constraint.WithTolerance(c.Tolerance), constraint.WithRecorder(rec))
	if err != nil {
		return p, nil, err
	}

	n := cons.AmbientDimension()
	lo, hi := make([]float64, n), make([]float64, n)
	for i := range lo {
		lo[i], hi[i] = -c.Bound, c.Bound
	}
	opts := append([]space.Option{
		space.WithDelta(c.Delta),
		space.WithLambda(c.Lambda),
		space.WithMaxSteps(c.MaxSteps),
		space.WithBounds(lo, hi),
		space.WithLogger(logger),
		space.WithRecorder(rec),
		space.WithAtlasOptions(
			atlas.WithRho(c.Atlas.Rho),
			atlas.WithAlpha(c.Atlas.Alpha),
			atlas.WithEpsilon(c.Atlas.Epsilon),
			atlas.WithExploration(c.Atlas.Exploration),
			atlas.WithMaxChartsPerExtension(c.Atlas.MaxCharts),
			atlas.WithSeed(c.Seed),
		),
	}, p.SpaceOptions()...)

	sp, err := space.New(kind, cons, opts...)
	if err != nil {
		return p, nil, err
	}

	return p, sp, nil
}

// problem resolves the configured problem; the chain is rebuilt for Links.
func (c Config) problem() (problems.Problem, error) {
	if c.Problem == "chain" {
		return problems.ChainProblem(c.Links)
	}

	return problems.Lookup(c.Problem)
}
