package model

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultGradientCheckAbsTol and DefaultGradientCheckRelTol are the
// tolerances CheckGradient applies when a caller does not need tighter or
// looser ones; they match the absolute/relative tolerance pair
// gradcheck_test.go verifies this package's own kernels against.
const (
	DefaultGradientCheckAbsTol = 1e-6
	DefaultGradientCheckRelTol = 1e-6
)

// GradientCheckError reports the first analytic/finite-difference mismatch
// CheckGradient found, identifying which derivative (objective gradient or
// constraint Jacobian) and which coordinate disagreed.
type GradientCheckError struct {
	Kind     string // "gradient" or "jacobian"
	Row, Col int    // Col only, for Kind == "gradient"
	Analytic float64
	Numeric  float64
}

func (e *GradientCheckError) Error() string {
	if e.Kind == "jacobian" {
		return fmt.Sprintf("model: jacobian[%d,%d] = %v, finite difference wants %v", e.Row, e.Col, e.Analytic, e.Numeric)
	}
	return fmt.Sprintf("model: grad[%d] = %v, finite difference wants %v", e.Col, e.Analytic, e.Numeric)
}

// CheckGradient validates, at the point x, that m's analytic objective
// gradient (EvalGradF) and constraint Jacobian (EvalJacG) agree with a
// centered finite difference of EvalF/EvalG to within absTol/relTol
// (compared via gonum's floats.EqualWithinAbsOrRel). Structure must have
// already run. Every gradient coordinate is compared; for the Jacobian only
// the entries listed by JacobianStructure are compared, so a nonzero
// finite-difference entry outside that pattern is not reported.
//
// This is the optional self-check spec property P4 describes: a caller
// who has plugged a custom nonlinear kernel into a group (§4.6.3) can call
// CheckGradient once at a representative point to catch a wrong
// hand-derived derivative before handing the model to a solver. It is not
// used on the hot evaluation path — gonum's diff/fd, floats and mat are
// pulled in for it, and package model carries no other dependency on gonum.
func (m *Model) CheckGradient(x []float64, absTol, relTol float64) error {
	if !m.structureReady {
		return ErrStructureNotReady
	}

	var evalErr error
	f := func(z []float64) float64 {
		v, err := m.EvalF(z)
		if err != nil && evalErr == nil {
			evalErr = err
		}
		return v
	}
	numericGrad := fd.Gradient(nil, f, x, &fd.Settings{Formula: fd.Central})
	if evalErr != nil {
		return evalErr
	}

	cols := m.GradientStructure()
	sparseGrad := make([]float64, len(cols))
	if err := m.EvalGradF(x, sparseGrad); err != nil {
		return err
	}
	analyticGrad := make([]float64, len(x))
	for k, col := range cols {
		analyticGrad[col] += sparseGrad[k]
	}
	for i := range analyticGrad {
		if !floats.EqualWithinAbsOrRel(analyticGrad[i], numericGrad[i], absTol, relTol) {
			return &GradientCheckError{Kind: "gradient", Col: i, Analytic: analyticGrad[i], Numeric: numericGrad[i]}
		}
	}

	nRows := m.TotalConstraintRows()
	if nRows == 0 {
		return nil
	}
	evalErr = nil
	g := func(dst, z []float64) {
		if err := m.EvalG(z, dst); err != nil && evalErr == nil {
			evalErr = err
		}
	}
	numericJac := mat.NewDense(nRows, len(x), nil)
	fd.Jacobian(numericJac, g, x, &fd.JacobianSettings{Formula: fd.Central})
	if evalErr != nil {
		return evalErr
	}

	rows, jcols := m.JacobianStructure()
	sparseJac := make([]float64, len(rows))
	if err := m.EvalJacG(x, sparseJac); err != nil {
		return err
	}
	for k := range rows {
		r, c := rows[k], jcols[k]
		want := numericJac.At(r, c)
		if !floats.EqualWithinAbsOrRel(sparseJac[k], want, absTol, relTol) {
			return &GradientCheckError{Kind: "jacobian", Row: r, Col: c, Analytic: sparseJac[k], Numeric: want}
		}
	}

	return nil
}
