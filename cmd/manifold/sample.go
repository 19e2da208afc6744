package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/manifold/rng"
	"github.com/katalvlaran/manifold/space"
)

func newSampleCmd(a *app) *cobra.Command {
	var (
		n           int
		workers     int
		printStates bool
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw valid states from the configured space in parallel",
		Long: `sample draws n valid states split across worker goroutines. Every worker
owns a random stream derived from --seed. The projected and nullspace spaces
are reproducible for a fixed worker count; the atlas grows in scheduling
order, so only a single worker gives repeatable atlas samples. The largest residual ‖F(x)‖ seen is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n <= 0 {
				return fmt.Errorf("sample: -n must be > 0, got %d", n)
			}
			if workers <= 0 {
				return fmt.Errorf("sample: --workers must be > 0, got %d", workers)
			}
			r, err := a.newRun("sample")
			if err != nil {
				return err
			}

			states := make([]space.State, n)
			base := rng.New(a.cfg.Seed)

			var mu sync.Mutex
			worst := 0.0
			g, ctx := errgroup.WithContext(cmd.Context())
			for w := 0; w < workers; w++ {
				wr := rng.Derive(base, uint64(w))
				g.Go(func() error {
					for i := w; i < n; i += workers {
						if err := ctx.Err(); err != nil {
							return err
						}
						s, err := r.space.SampleValid(wr)
						if err != nil {
							return fmt.Errorf("sample %d: %w", i, err)
						}
						states[i] = s
						res := r.space.Constraint().ResidualNorm(s.X)
						mu.Lock()
						if res > worst {
							worst = res
						}
						mu.Unlock()
					}
					return nil
				})
			}
			if err = g.Wait(); err != nil {
				return err
			}
			r.logger.Info("sampling finished", zap.Int("samples", n), zap.Int("workers", workers))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "problem:  %s\n", r.problem.Name)
			fmt.Fprintf(out, "space:    %s\n", r.space.Kind())
			fmt.Fprintf(out, "samples:  %d\n", n)
			fmt.Fprintf(out, "residual: %.3e\n", worst)
			if as, ok := r.space.(*space.AtlasSpace); ok {
				fmt.Fprintf(out, "charts:   %d\n", as.Atlas().ChartCount())
			}
			if printStates {
				for _, s := range states {
					fmt.Fprintln(out, formatVector(s.X))
				}
			}
			if showMetrics {
				return r.writeMetrics(out)
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 100, "number of samples")
	cmd.Flags().IntVar(&workers, "workers", 1, "sampling goroutines")
	cmd.Flags().BoolVar(&printStates, "print-states", false, "print every sample, one per line")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print the run's metric samples")

	return cmd
}
