package constraint

// Function is an implicit constraint F: Rⁿ → Rᵏ with its Jacobian.
// Implementations must not retain x or out.
type Function interface {
	// AmbientDimension returns n.
	AmbientDimension() int

	// CoDimension returns k, the number of scalar equations.
	CoDimension() int

	// Evaluate writes F(x) into out (len k).
	Evaluate(x, out []float64)

	// Jacobian writes ∂F/∂x at x into out as a row-major k×n buffer.
	Jacobian(x, out []float64)
}

// ResidualFunc writes F(x) into out.
type ResidualFunc func(x, out []float64)

// JacobianFunc writes the row-major k×n Jacobian at x into out.
type JacobianFunc func(x, out []float64)

// Funcs adapts closures to Function. When J is nil the Jacobian is
// approximated by central differences with step Step
// (DefaultFiniteDifferenceStep when zero).
type Funcs struct {
	N, K int
	F    ResidualFunc
	J    JacobianFunc
	Step float64
}

var _ Function = Funcs{}

func (f Funcs) AmbientDimension() int { return f.N }
func (f Funcs) CoDimension() int      { return f.K }

func (f Funcs) Evaluate(x, out []float64) { f.F(x, out) }

func (f Funcs) Jacobian(x, out []float64) {
	if f.J != nil {
		f.J(x, out)
		return
	}
	h := f.Step
	if h <= 0 {
		h = DefaultFiniteDifferenceStep
	}
	NumericJacobian(f.F, f.K, h, x, out)
}

// NumericJacobian approximates the k×n Jacobian of F at x with central
// differences (F(x+h·eⱼ) − F(x−h·eⱼ)) / 2h, writing row-major into out.
// x is not modified.
//
// Complexity: 2n evaluations of F, O(n + k) scratch.
func NumericJacobian(F ResidualFunc, k int, h float64, x, out []float64) {
	n := len(x)
	y := make([]float64, n)
	copy(y, x)
	fp := make([]float64, k)
	fm := make([]float64, k)

	var i, j int
	for j = 0; j < n; j++ {
		y[j] = x[j] + h
		F(y, fp)
		y[j] = x[j] - h
		F(y, fm)
		y[j] = x[j]
		for i = 0; i < k; i++ {
			out[i*n+j] = (fp[i] - fm[i]) / (2 * h)
		}
	}
}
