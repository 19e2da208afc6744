// SPDX-License-Identifier: MIT

package atlas

import "errors"

var (
	// ErrNilConstraint indicates New was called without a constraint.
	ErrNilConstraint = errors.New("atlas: nil constraint")

	// ErrChartExplosion indicates one extension created more charts than allowed.
	ErrChartExplosion = errors.New("atlas: chart explosion")

	// ErrUnknownChart indicates a chart id that is not registered.
	ErrUnknownChart = errors.New("atlas: unknown chart")

	// ErrEmptyAtlas indicates an operation that needs at least one chart.
	ErrEmptyAtlas = errors.New("atlas: no charts")
)
