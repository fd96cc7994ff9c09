package quadratic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lithiumgraph/nlcore/core"
	"github.com/lithiumgraph/nlcore/quadratic"
)

// TestEvaluatorObjectiveSquare mirrors the quadratic half of spec scenario
// S5: f(x0, x1) = (x0-1)^2 + x1^2 = x0^2 - 2*x0 + 1 + x1^2.
func TestEvaluatorObjectiveSquare(t *testing.T) {
	e := quadratic.NewEvaluator()
	e.AddRow(core.ScalarQuadraticFunction{
		QuadraticRows:  []core.EntityId{0, 1},
		QuadraticCols:  []core.EntityId{0, 1},
		QuadraticCoefs: []float64{1, 1},
		Variables:      []core.EntityId{0},
		Coefficients:   []float64{-2},
		Constant:       1,
	})

	f := make([]float64, 1)
	require.NoError(t, e.EvalFunction([]float64{1, 0}, f))
	require.InDelta(t, 0, f[0], 1e-9)

	_, cols := e.AnalyzeJacobianStructure()
	require.ElementsMatch(t, []int{0, 1}, cols)

	jac := make([]float64, 2)
	require.NoError(t, e.EvalJacobian([]float64{1, 0}, jac))
	for _, v := range jac {
		require.InDelta(t, 0, v, 1e-9)
	}

	m := core.NewHessianIndexMap(core.HessianUpper)
	e.AnalyzeHessianStructure(m)
	require.Equal(t, 2, m.NNZ())

	h := make([]float64, m.NNZ())
	require.NoError(t, e.EvalLagrangianHessian([]float64{1}, h))
	for _, v := range h {
		require.InDelta(t, 2, v, 1e-9)
	}
}

func TestEvaluatorOffDiagonalTerm(t *testing.T) {
	// f(x0, x1) = 3*x0*x1
	e := quadratic.NewEvaluator()
	e.AddRow(core.ScalarQuadraticFunction{
		QuadraticRows:  []core.EntityId{0},
		QuadraticCols:  []core.EntityId{1},
		QuadraticCoefs: []float64{3},
	})

	f := make([]float64, 1)
	require.NoError(t, e.EvalFunction([]float64{2, 5}, f))
	require.InDelta(t, 30, f[0], 1e-9)

	rows, cols := e.AnalyzeJacobianStructure()
	require.Len(t, rows, 2)
	jac := make([]float64, 2)
	require.NoError(t, e.EvalJacobian([]float64{2, 5}, jac))
	for k, col := range cols {
		if col == 0 {
			require.InDelta(t, 3*5, jac[k], 1e-9)
		} else {
			require.InDelta(t, 3*2, jac[k], 1e-9)
		}
	}

	m := core.NewHessianIndexMap(core.HessianUpper)
	e.AnalyzeHessianStructure(m)
	require.Equal(t, 1, m.NNZ()) // (0,1) only, canonicalized upper
	require.Equal(t, 0, m.Rows()[0])
	require.Equal(t, 1, m.Cols()[0])
}

func TestEvaluatorDimensionMismatch(t *testing.T) {
	e := quadratic.NewEvaluator()
	e.AddRow(core.ScalarQuadraticFunction{QuadraticRows: []core.EntityId{0}, QuadraticCols: []core.EntityId{0}, QuadraticCoefs: []float64{1}})
	require.ErrorIs(t, e.EvalFunction([]float64{1}, make([]float64, 2)), quadratic.ErrDimensionMismatch)
}
