package linear

import (
	"errors"

	"github.com/lithiumgraph/nlcore/core"
)

// ErrDimensionMismatch indicates a caller-provided buffer's length does
// not match the evaluator's row or term count.
var ErrDimensionMismatch = errors.New("linear: buffer length does not match evaluator dimensions")

// Evaluator is the CSR-compressed affine-row store. Rows accumulate via
// AddRow; coefs/cols are append-only and never reordered, so a row's
// column order in the Jacobian matches its ScalarAffineFunction.Variables
// order exactly.
type Evaluator struct {
	coefs []float64
	cols  []int

	rowIntervals []int // len NRows()+1, CSR row pointers over coefs/cols

	// Sparse per-row constant terms: only rows with a nonzero Constant are
	// recorded here, per the spec's "constant_values[], constant_indices[]
	// for rows that carry a constant term".
	constRows   []int
	constValues []float64
}

// NewEvaluator returns an empty evaluator with no rows.
func NewEvaluator() *Evaluator {
	return &Evaluator{rowIntervals: []int{0}}
}

// NRows reports the number of rows added so far.
func (e *Evaluator) NRows() int { return len(e.rowIntervals) - 1 }

// NNZ reports the total number of stored (coef, col) terms across all rows.
func (e *Evaluator) NNZ() int { return len(e.coefs) }

// AddRow appends f as a new row and returns its row index.
func (e *Evaluator) AddRow(f core.ScalarAffineFunction) int {
	row := e.NRows()
	for i, v := range f.Variables {
		e.coefs = append(e.coefs, f.Coefficients[i])
		e.cols = append(e.cols, int(v))
	}
	e.rowIntervals = append(e.rowIntervals, len(e.coefs))
	if f.Constant != 0 {
		e.constRows = append(e.constRows, row)
		e.constValues = append(e.constValues, f.Constant)
	}
	return row
}

// EvalFunction writes f[i] = Sum coefs*x[cols] + constant for every row i.
// f must have length NRows().
func (e *Evaluator) EvalFunction(x, f []float64) error {
	if len(f) != e.NRows() {
		return ErrDimensionMismatch
	}
	for i := 0; i < e.NRows(); i++ {
		var sum float64
		for k := e.rowIntervals[i]; k < e.rowIntervals[i+1]; k++ {
			sum += e.coefs[k] * x[e.cols[k]]
		}
		f[i] = sum
	}
	for i, row := range e.constRows {
		f[row] += e.constValues[i]
	}
	return nil
}

// AnalyzeJacobianStructure appends (row, col) for every stored term, in
// row-major order, matching the order EvalJacobian writes values in.
func (e *Evaluator) AnalyzeJacobianStructure() (rows, cols []int) {
	rows = make([]int, 0, len(e.coefs))
	cols = make([]int, 0, len(e.coefs))
	for i := 0; i < e.NRows(); i++ {
		for k := e.rowIntervals[i]; k < e.rowIntervals[i+1]; k++ {
			rows = append(rows, i)
			cols = append(cols, e.cols[k])
		}
	}
	return rows, cols
}

// EvalJacobian copies the stored coefficients into jac, which must have
// length NNZ(); an affine row's Jacobian entries are constant in x.
func (e *Evaluator) EvalJacobian(jac []float64) error {
	if len(jac) != len(e.coefs) {
		return ErrDimensionMismatch
	}
	copy(jac, e.coefs)
	return nil
}
