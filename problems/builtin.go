package problems

import (
	"math"

	"github.com/katalvlaran/manifold/constraint"
)

// Torus radii of the built-in torus problem.
const (
	TorusMajor = 2.0
	TorusMinor = 1.0
)

func init() {
	chain, err := ChainProblem(DefaultChainLinks)
	if err != nil {
		panic(err)
	}
	mustRegister(chain)
	mustRegister(Problem{
		Name:        "sphere",
		Description: "unit sphere in R³, quarter great circle",
		Function:    Sphere(),
		Start:       []float64{1, 0, 0},
		Goal:        []float64{0, 1, 0},
	})
	mustRegister(Problem{
		Name:        "torus",
		Description: "torus R=2 r=1 in R³, bottom of the tube to the opposite top",
		Function:    Torus(TorusMajor, TorusMinor),
		Start:       []float64{-2, 0, -1},
		Goal:        []float64{2, 0, 1},
	})
	mustRegister(Problem{
		Name:        "plane",
		Description: "plane x+y+z=1 in R³",
		Function:    Plane(),
		Start:       []float64{1, 0, 0},
		Goal:        []float64{0, 1, 0},
	})
	mustRegister(Problem{
		Name:        "circle",
		Description: "unit circle in the z=0 plane, two equations in R³",
		Function:    Circle(),
		Start:       []float64{1, 0, 0},
		Goal:        []float64{0, 1, 0},
	})
	mustRegister(Problem{
		Name:        "sphere-wall",
		Description: "unit sphere with a forbidden band around the equator, broken by a gap at x>0.8",
		Function:    Sphere(),
		Start:       []float64{0, 0, 1},
		Goal:        []float64{0, 0, -1},
		Via:         [][]float64{{1, 0, 0}},
		Validity: func(x []float64) bool {
			return math.Abs(x[2]) > 0.1 || x[0] > 0.8
		},
	})
}

// Sphere is F(x) = ‖x‖² − 1 in R³.
func Sphere() constraint.Function {
	return constraint.Funcs{
		N: 3, K: 1,
		F: func(x, out []float64) { out[0] = x[0]*x[0] + x[1]*x[1] + x[2]*x[2] - 1 },
		J: func(x, out []float64) { out[0], out[1], out[2] = 2*x[0], 2*x[1], 2*x[2] },
	}
}

// Torus is F(x) = (√(x²+y²) − R)² + z² − r².
func Torus(major, minor float64) constraint.Function {
	return constraint.Funcs{
		N: 3, K: 1,
		F: func(x, out []float64) {
			q := math.Hypot(x[0], x[1]) - major
			out[0] = q*q + x[2]*x[2] - minor*minor
		},
		J: func(x, out []float64) {
			r := math.Hypot(x[0], x[1])
			if r == 0 {
				// Singular on the axis.
				out[0], out[1], out[2] = 0, 0, 2*x[2]
				return
			}
			q := r - major
			out[0] = 2 * q * x[0] / r
			out[1] = 2 * q * x[1] / r
			out[2] = 2 * x[2]
		},
	}
}

// Plane is F(x) = x + y + z − 1.
func Plane() constraint.Function {
	return constraint.Funcs{
		N: 3, K: 1,
		F: func(x, out []float64) { out[0] = x[0] + x[1] + x[2] - 1 },
		J: func(_, out []float64) { out[0], out[1], out[2] = 1, 1, 1 },
	}
}

// Circle is F(x) = (‖x‖² − 1, z): a curve of co-dimension 2.
func Circle() constraint.Function {
	return constraint.Funcs{
		N: 3, K: 2,
		F: func(x, out []float64) {
			out[0] = x[0]*x[0] + x[1]*x[1] + x[2]*x[2] - 1
			out[1] = x[2]
		},
		J: func(x, out []float64) {
			out[0], out[1], out[2] = 2*x[0], 2*x[1], 2*x[2]
			out[3], out[4], out[5] = 0, 0, 1
		},
	}
}
