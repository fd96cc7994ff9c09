package autodiff

import (
	"math"

	"github.com/lithiumgraph/nlcore/core"
)

// HessianSparsityType re-exports core.HessianSparsityType: structure
// analysis only needs to pick a local half to walk, but it is the same
// model-wide convention enforced later by the shared core.HessianIndexMap,
// so the two must never drift into separate types.
type HessianSparsityType = core.HessianSparsityType

const (
	HessianUpper = core.HessianUpper
	HessianLower = core.HessianLower
)

// DefaultHessianSparsityType is Upper, matching core.DefaultHessianSparsityType.
const DefaultHessianSparsityType = core.DefaultHessianSparsityType

// indexPair is one (row, col) entry in a local sparsity pattern.
type indexPair struct {
	Row, Col int
}

// Structure is the symbolic sparsity pattern of one Program, derived by
// evaluating it once at a seed point and keeping every entry whose
// magnitude exceeds a small tolerance. Entries that are numerically zero
// only at the seed but not identically zero are a known, accepted
// imprecision (the spec allows deriving sparsity this way rather than by
// symbolic zero-detection).
type Structure struct {
	Nx, Np, Ny   int
	HasParameter bool

	// Jacobian holds one entry per (output, variable) pair with a nonzero
	// partial derivative, in row-major (output-major) order.
	Jacobian []indexPair

	// Hessian holds one entry per (variable, variable) pair with a nonzero
	// second derivative somewhere across the weighted output sum, reduced
	// to the triangle named by Triangle.
	Hessian  []indexPair
	Triangle HessianSparsityType

	HasJacobian bool
	HasHessian  bool
}

// DefaultZeroTolerance is the magnitude below which a seed-point derivative
// is treated as structurally zero.
const DefaultZeroTolerance = 1e-12

// AnalyzeStructure derives prog's Jacobian and Hessian sparsity by
// evaluating it at (x0, p0). x0/p0 should be an interior-ish point (never
// a value that makes a Unary/Binary domain-invalid, e.g. log(0)); callers
// typically use the model's variable start values or 1.0 where unset.
func AnalyzeStructure(prog *Program, x0, p0 []float64, triangle HessianSparsityType, zeroTol float64) (*Structure, error) {
	s := &Structure{
		Nx:           prog.Nx,
		Np:           prog.Np,
		Ny:           prog.Ny,
		HasParameter: prog.HasParameter,
		Triangle:     triangle,
	}

	_, jac, err := EvalJacobian(prog, x0, p0)
	if err != nil {
		return nil, err
	}
	for i := 0; i < prog.Ny; i++ {
		for j := 0; j < prog.Nx; j++ {
			if math.Abs(jac[i][j]) > zeroTol {
				s.Jacobian = append(s.Jacobian, indexPair{Row: i, Col: j})
			}
		}
	}
	s.HasJacobian = len(s.Jacobian) > 0

	w := make([]float64, prog.Ny)
	for i := range w {
		w[i] = 1
	}
	hess, err := EvalHessianWeighted(prog, x0, p0, w)
	if err != nil {
		return nil, err
	}
	nx := prog.Nx
	for row := 0; row < nx; row++ {
		for col := 0; col < nx; col++ {
			if triangle == HessianUpper && row > col {
				continue
			}
			if triangle == HessianLower && row < col {
				continue
			}
			if math.Abs(hess[row*nx+col]) > zeroTol {
				s.Hessian = append(s.Hessian, indexPair{Row: row, Col: col})
			}
		}
	}
	s.HasHessian = len(s.Hessian) > 0

	return s, nil
}
