package problems

import (
	"fmt"
	"math"

	"github.com/katalvlaran/manifold/constraint"
)

// DefaultChainLinks is the link count of the registered "chain" problem.
const DefaultChainLinks = 5

// chainTilt is the angle between each link and the x axis in the start pose.
const chainTilt = math.Pi / 6

// Chain is a serial chain of unit links rooted at the origin. The state is
// the joint positions p₁…pₙ ∈ R³ stacked into R³ⁿ, and
//
//	Fᵢ(x)   = ‖pᵢ − pᵢ₋₁‖² − 1   for i = 1..n (p₀ = 0)
//	Fₙ₊₁(x) = x(pₙ) − n·cos(π/6)
//
// pins the end effector to the plane x = n·cos(π/6). The manifold has
// dimension 2n − 1.
func Chain(links int) (constraint.Function, error) {
	if links < 1 {
		return nil, fmt.Errorf("problems: chain needs at least one link, got %d: %w", links, ErrInvalidProblem)
	}
	n := 3 * links
	reach := float64(links) * math.Cos(chainTilt)

	return constraint.Funcs{
		N: n, K: links + 1,
		F: func(x, out []float64) {
			var prev [3]float64
			for i := 0; i < links; i++ {
				p := x[3*i : 3*i+3]
				dx, dy, dz := p[0]-prev[0], p[1]-prev[1], p[2]-prev[2]
				out[i] = dx*dx + dy*dy + dz*dz - 1
				prev = [3]float64{p[0], p[1], p[2]}
			}
			out[links] = x[n-3] - reach
		},
		J: func(x, out []float64) {
			clear(out)
			var prev [3]float64
			for i := 0; i < links; i++ {
				row := out[i*n : (i+1)*n]
				for j := 0; j < 3; j++ {
					d := 2 * (x[3*i+j] - prev[j])
					row[3*i+j] = d
					if i > 0 {
						row[3*(i-1)+j] = -d
					}
					prev[j] = x[3*i+j]
				}
			}
			out[links*n+n-3] = 1
		},
	}, nil
}

// chainPose places the odd joints on a circle of radius sin(π/6) around the
// x axis at angle phi; even joints stay on the axis. Every link keeps unit
// length and the end effector stays on its plane for any phi.
func chainPose(links int, phi float64) []float64 {
	a, b := math.Cos(chainTilt), math.Sin(chainTilt)
	x := make([]float64, 3*links)
	for i := 1; i <= links; i++ {
		p := x[3*(i-1) : 3*i]
		p[0] = float64(i) * a
		if i%2 == 1 {
			p[1], p[2] = b*math.Cos(phi), b*math.Sin(phi)
		}
	}

	return x
}

// ChainProblem swings the odd joints of an n-link chain a quarter turn
// about the x axis.
func ChainProblem(links int) (Problem, error) {
	fn, err := Chain(links)
	if err != nil {
		return Problem{}, err
	}

	return Problem{
		Name:        "chain",
		Description: fmt.Sprintf("%d-link unit chain in R³ with the end effector on a plane, odd joints swing a quarter turn", links),
		Function:    fn,
		Start:       chainPose(links, 0),
		Goal:        chainPose(links, math.Pi/2),
	}, nil
}
