package quadratic

import (
	"errors"

	"github.com/lithiumgraph/nlcore/core"
)

// ErrDimensionMismatch indicates a caller-provided buffer's length does
// not match the evaluator's row, term, or Jacobian-slot count.
var ErrDimensionMismatch = errors.New("quadratic: buffer length does not match evaluator dimensions")

// Evaluator is the CSR-compressed quadratic-row store.
type Evaluator struct {
	// Per-row value segments.
	diagCoef         []float64
	diagVar          []int
	diagRowIntervals []int

	offCoef         []float64
	offRowVar       []int
	offColVar       []int
	offRowIntervals []int

	linCoef         []float64
	linVar          []int
	linRowIntervals []int

	constant []float64 // len NRows()

	// Jacobian support: a per-row variable dedup built during AddRow,
	// giving a stable sparse-row layout (spec §4.5).
	jacVarIndices   []int
	jacRowIntervals []int
	jacConstant     []float64 // starting value of each slot: the row's linear coefficient, if any
	jacDiagSlot     []int     // jacDiagSlot[i] -> slot for diagVar[i]
	jacOffRowSlot   []int     // jacOffRowSlot[i] -> slot for offRowVar[i]
	jacOffColSlot   []int     // jacOffColSlot[i] -> slot for offColVar[i]

	// Which row each diag/off-diag term belongs to, needed by
	// eval_lagrangian_hessian's per-row lambda weight.
	diagRowOf []int
	offRowOf  []int

	// Hessian support, populated by AnalyzeHessianStructure.
	hessDiagSlot []int
	hessOffSlot  []int
}

// NewEvaluator returns an empty evaluator with no rows.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		diagRowIntervals: []int{0},
		offRowIntervals:  []int{0},
		linRowIntervals:  []int{0},
		jacRowIntervals:  []int{0},
	}
}

// NRows reports the number of rows added so far.
func (e *Evaluator) NRows() int { return len(e.constant) }

// AddRow appends f as a new row and returns its row index. Each
// (QuadraticRows[k], QuadraticCols[k]) pair is split into the diagonal
// segment (row == col) or the off-diagonal segment.
func (e *Evaluator) AddRow(f core.ScalarQuadraticFunction) int {
	row := e.NRows()
	localSlot := make(map[int]int)

	ensureSlot := func(v int) int {
		if s, ok := localSlot[v]; ok {
			return s
		}
		s := len(e.jacVarIndices)
		e.jacVarIndices = append(e.jacVarIndices, v)
		e.jacConstant = append(e.jacConstant, 0)
		localSlot[v] = s
		return s
	}

	for k := range f.QuadraticRows {
		r, c, coef := int(f.QuadraticRows[k]), int(f.QuadraticCols[k]), f.QuadraticCoefs[k]
		if r == c {
			slot := ensureSlot(r)
			e.diagCoef = append(e.diagCoef, coef)
			e.diagVar = append(e.diagVar, r)
			e.jacDiagSlot = append(e.jacDiagSlot, slot)
			e.diagRowOf = append(e.diagRowOf, row)
		} else {
			rowSlot := ensureSlot(r)
			colSlot := ensureSlot(c)
			e.offCoef = append(e.offCoef, coef)
			e.offRowVar = append(e.offRowVar, r)
			e.offColVar = append(e.offColVar, c)
			e.jacOffRowSlot = append(e.jacOffRowSlot, rowSlot)
			e.jacOffColSlot = append(e.jacOffColSlot, colSlot)
			e.offRowOf = append(e.offRowOf, row)
		}
	}

	for i, v := range f.Variables {
		slot := ensureSlot(int(v))
		e.jacConstant[slot] += f.Coefficients[i]
		e.linCoef = append(e.linCoef, f.Coefficients[i])
		e.linVar = append(e.linVar, int(v))
	}

	e.diagRowIntervals = append(e.diagRowIntervals, len(e.diagCoef))
	e.offRowIntervals = append(e.offRowIntervals, len(e.offCoef))
	e.linRowIntervals = append(e.linRowIntervals, len(e.linCoef))
	e.jacRowIntervals = append(e.jacRowIntervals, len(e.jacVarIndices))
	e.constant = append(e.constant, f.Constant)
	return row
}

// EvalFunction writes f[i] = diag + off-diag + linear + constant for every
// row i. f must have length NRows().
func (e *Evaluator) EvalFunction(x, f []float64) error {
	if len(f) != e.NRows() {
		return ErrDimensionMismatch
	}
	for i := 0; i < e.NRows(); i++ {
		var sum float64
		for k := e.diagRowIntervals[i]; k < e.diagRowIntervals[i+1]; k++ {
			v := x[e.diagVar[k]]
			sum += e.diagCoef[k] * v * v
		}
		for k := e.offRowIntervals[i]; k < e.offRowIntervals[i+1]; k++ {
			sum += e.offCoef[k] * x[e.offRowVar[k]] * x[e.offColVar[k]]
		}
		for k := e.linRowIntervals[i]; k < e.linRowIntervals[i+1]; k++ {
			sum += e.linCoef[k] * x[e.linVar[k]]
		}
		f[i] = sum + e.constant[i]
	}
	return nil
}

// AnalyzeJacobianStructure appends (row, col) for every sparse Jacobian
// slot, in row-major order over jacRowIntervals.
func (e *Evaluator) AnalyzeJacobianStructure() (rows, cols []int) {
	n := len(e.jacVarIndices)
	rows = make([]int, 0, n)
	cols = make([]int, 0, n)
	for i := 0; i < e.NRows(); i++ {
		for k := e.jacRowIntervals[i]; k < e.jacRowIntervals[i+1]; k++ {
			rows = append(rows, i)
			cols = append(cols, e.jacVarIndices[k])
		}
	}
	return rows, cols
}

// EvalJacobian writes the dense per-slot Jacobian values into jac, which
// must have length len(jacVarIndices): first the starting linear
// coefficients, then the diagonal and off-diagonal contributions at x.
func (e *Evaluator) EvalJacobian(x, jac []float64) error {
	if len(jac) != len(e.jacVarIndices) {
		return ErrDimensionMismatch
	}
	copy(jac, e.jacConstant)
	for i := range e.diagCoef {
		jac[e.jacDiagSlot[i]] += 2 * e.diagCoef[i] * x[e.diagVar[i]]
	}
	for i := range e.offCoef {
		jac[e.jacOffRowSlot[i]] += e.offCoef[i] * x[e.offColVar[i]]
		jac[e.jacOffColSlot[i]] += e.offCoef[i] * x[e.offRowVar[i]]
	}
	return nil
}

// AnalyzeHessianStructure walks each diagonal and off-diagonal term,
// interns its (row, col) pair into m (the model-wide shared map), and
// records the resolved slot for eval_lagrangian_hessian. m's own triangle
// convention governs canonicalization; this evaluator does not decide it.
func (e *Evaluator) AnalyzeHessianStructure(m *core.HessianIndexMap) {
	e.hessDiagSlot = make([]int, len(e.diagCoef))
	for i, v := range e.diagVar {
		e.hessDiagSlot[i] = m.Intern(v, v)
	}
	e.hessOffSlot = make([]int, len(e.offCoef))
	for i := range e.offCoef {
		e.hessOffSlot[i] = m.Intern(e.offRowVar[i], e.offColVar[i])
	}
}

// EvalLagrangianHessian scatter-adds this evaluator's contribution into H
// (the model-wide Hessian buffer), weighted by lambda, the per-row
// multiplier slice (length NRows()). AnalyzeHessianStructure must have run
// first.
func (e *Evaluator) EvalLagrangianHessian(lambda, h []float64) error {
	if len(lambda) != e.NRows() {
		return ErrDimensionMismatch
	}
	for i := range e.diagCoef {
		h[e.hessDiagSlot[i]] += 2 * e.diagCoef[i] * lambda[e.diagRowOf[i]]
	}
	for i := range e.offCoef {
		h[e.hessOffSlot[i]] += e.offCoef[i] * lambda[e.offRowOf[i]]
	}
	return nil
}
