package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lithiumgraph/nlcore/core"
)

func TestMergeScalarAffineFunctionCoefficientShortcuts(t *testing.T) {
	g := core.NewExpressionGraph()
	f := core.ScalarAffineFunction{
		Variables:    []core.EntityId{0, 1, 2},
		Coefficients: []float64{1, -1, 2.5},
		Constant:     3,
	}
	h := g.MergeScalarAffineFunction(f)
	require.Equal(t, core.KindNary, h.Kind)
	op, err := g.GetNaryOperator(h)
	require.NoError(t, err)
	require.Equal(t, core.Add, op)
}

func TestMergeScalarQuadraticFunction(t *testing.T) {
	g := core.NewExpressionGraph()
	f := core.ScalarQuadraticFunction{
		QuadraticRows:  []core.EntityId{0},
		QuadraticCols:  []core.EntityId{0},
		QuadraticCoefs: []float64{1},
		Variables:      []core.EntityId{1},
		Coefficients:   []float64{2},
		Constant:       0,
	}
	h := g.MergeScalarQuadraticFunction(f)
	op, err := g.GetNaryOperator(h)
	require.NoError(t, err)
	require.Equal(t, core.Add, op)
	require.Equal(t, 2, g.NVariables())
}
