package linear_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lithiumgraph/nlcore/core"
	"github.com/lithiumgraph/nlcore/linear"
)

func TestEvaluatorEvalFunctionAndJacobian(t *testing.T) {
	e := linear.NewEvaluator()
	row0 := e.AddRow(core.ScalarAffineFunction{
		Variables:    []core.EntityId{0, 1},
		Coefficients: []float64{1, 1},
		Constant:     -1,
	})
	require.Equal(t, 0, row0)

	require.Equal(t, 1, e.NRows())
	require.Equal(t, 2, e.NNZ())

	f := make([]float64, 1)
	require.NoError(t, e.EvalFunction([]float64{0.4, 0.6}, f))
	require.InDelta(t, 0, f[0], 1e-9) // 0.4+0.6-1 = 0

	rows, cols := e.AnalyzeJacobianStructure()
	require.Equal(t, []int{0, 0}, rows)
	require.Equal(t, []int{0, 1}, cols)

	jac := make([]float64, 2)
	require.NoError(t, e.EvalJacobian(jac))
	require.Equal(t, []float64{1, 1}, jac)
}

func TestEvaluatorMultipleRows(t *testing.T) {
	e := linear.NewEvaluator()
	e.AddRow(core.ScalarAffineFunction{Variables: []core.EntityId{0}, Coefficients: []float64{2}})
	e.AddRow(core.ScalarAffineFunction{Variables: []core.EntityId{1}, Coefficients: []float64{3}, Constant: 5})

	f := make([]float64, 2)
	require.NoError(t, e.EvalFunction([]float64{10, 10}, f))
	require.InDelta(t, 20, f[0], 1e-9)
	require.InDelta(t, 35, f[1], 1e-9)
}

func TestEvaluatorDimensionMismatch(t *testing.T) {
	e := linear.NewEvaluator()
	e.AddRow(core.ScalarAffineFunction{Variables: []core.EntityId{0}, Coefficients: []float64{1}})
	require.ErrorIs(t, e.EvalFunction([]float64{1}, make([]float64, 2)), linear.ErrDimensionMismatch)
}
