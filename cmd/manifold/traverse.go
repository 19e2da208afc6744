package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/manifold/space"
)

func newTraverseCmd(a *app) *cobra.Command {
	var (
		printStates bool
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "traverse",
		Short: "Traverse the problem's waypoints and report the fine path",
		Long: `traverse places the problem's start, via and goal points on the manifold
and walks between each consecutive pair with the configured space. The path
length, state count and, for the atlas, chart statistics are printed.

A divergent or invalid edge ends the walk early; the prefix is still reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.newRun("traverse")
			if err != nil {
				return err
			}

			waypoints, err := placeWaypoints(r.space, r.problem.Waypoints())
			if err != nil {
				return err
			}

			path, travErr := space.ExpandPath(r.space, waypoints)
			sum := space.Summarize(r.space, path)

			var te *space.TraversalError
			switch {
			case errors.As(travErr, &te):
				r.logger.Warn("traversal diverged", zap.Int("step", te.Step), zap.Error(te.Err))
			case travErr != nil:
				r.logger.Warn("traversal failed", zap.Error(travErr))
			}
			r.logger.Info("traversal finished",
				zap.Bool("complete", sum.Complete),
				zap.Int("states", sum.States),
				zap.Float64("length", sum.Length),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "problem:  %s\n", r.problem.Name)
			fmt.Fprintf(out, "space:    %s\n", r.space.Kind())
			fmt.Fprintf(out, "complete: %t\n", sum.Complete)
			fmt.Fprintf(out, "states:   %d\n", sum.States)
			fmt.Fprintf(out, "length:   %.6f\n", sum.Length)
			if r.space.Kind() == space.KindAtlas {
				fmt.Fprintf(out, "charts:   %d\n", sum.Charts)
				fmt.Fprintf(out, "frontier: %.2f%%\n", sum.FrontierPercent)
			}
			if printStates {
				for _, s := range path.States {
					fmt.Fprintln(out, formatVector(s.X))
				}
			}
			if showMetrics {
				if err = r.writeMetrics(out); err != nil {
					return err
				}
			}

			return travErr
		},
	}
	cmd.Flags().BoolVar(&printStates, "print-states", false, "print every state of the path, one per line")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print the run's metric samples")

	return cmd
}

// placeWaypoints puts every ambient point on the manifold. The atlas anchors
// a chart at each so that the endpoints are chart centres.
func placeWaypoints(sp space.StateSpace, points [][]float64) ([]space.State, error) {
	out := make([]space.State, 0, len(points))
	for i, x := range points {
		var (
			s   space.State
			err error
		)
		if as, ok := sp.(*space.AtlasSpace); ok {
			s, err = as.AnchorState(x)
		} else {
			s, err = sp.NewState(x)
		}
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		if !sp.IsValid(s) {
			return nil, fmt.Errorf("waypoint %d %v: %w", i, x, errInvalidWaypoint)
		}
		out = append(out, s)
	}

	return out, nil
}

var errInvalidWaypoint = errors.New("manifold: waypoint is not a valid state")

func formatVector(x []float64) string {
	fields := make([]string, len(x))
	for i, v := range x {
		fields[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}

	return strings.Join(fields, " ")
}
