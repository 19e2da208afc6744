package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	verbose    bool
	configPath string
	cfg        Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "manifold",
		Short: "Constrained state-space traversal on implicit manifolds",
		Long: `manifold walks between points of an implicit constraint manifold F(x)=0
using one of three representations:

  projected  every step is re-projected with Newton's method
  nullspace  steps follow the Jacobian null space, then project once
  atlas      steps are taken in local tangent charts built on demand

Numeric knobs can be set in a YAML file (--config) and overridden by flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger

			if a.configPath != "" {
				cfg, err := LoadConfig(a.configPath)
				if err != nil {
					return err
				}
				a.cfg = cfg
			}

			return a.cfg.applyFlags(cmd.Flags())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	registerFlags(pf)

	root.AddCommand(
		newTraverseCmd(a),
		newSampleCmd(a),
		newProblemsCmd(),
	)

	return root
}
