package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lithiumgraph/nlcore/autodiff"
	"github.com/lithiumgraph/nlcore/core"
)

func TestAnalyzeStructureObjectiveSquare(t *testing.T) {
	g := core.NewExpressionGraph()
	x := g.AddVariable(0)
	out := g.AddNary(core.Mul, []core.ExpressionHandle{x, x})

	prog, err := autodiff.Trace(g, []core.EntityId{0}, []core.ExpressionHandle{out})
	require.NoError(t, err)

	s, err := autodiff.AnalyzeStructure(prog, []float64{4}, nil, autodiff.HessianUpper, autodiff.DefaultZeroTolerance)
	require.NoError(t, err)
	require.True(t, s.HasJacobian)
	require.True(t, s.HasHessian)
	require.Len(t, s.Jacobian, 1)
	require.Equal(t, 0, s.Jacobian[0].Row)
	require.Equal(t, 0, s.Jacobian[0].Col)
	require.Len(t, s.Hessian, 1)
}

func TestAnalyzeStructureDropsStructuralZero(t *testing.T) {
	// f(x0, x1) = x0 * x0 never depends on x1, so the Jacobian/Hessian
	// pattern must not include column 1 at all.
	g := core.NewExpressionGraph()
	x0 := g.AddVariable(0)
	_ = g.AddVariable(1)
	out := g.AddNary(core.Mul, []core.ExpressionHandle{x0, x0})

	prog, err := autodiff.Trace(g, []core.EntityId{0, 1}, []core.ExpressionHandle{out})
	require.NoError(t, err)

	s, err := autodiff.AnalyzeStructure(prog, []float64{2, 5}, nil, autodiff.HessianUpper, autodiff.DefaultZeroTolerance)
	require.NoError(t, err)
	for _, rc := range s.Jacobian {
		require.NotEqual(t, 1, rc.Col)
	}
	for _, rc := range s.Hessian {
		require.NotEqual(t, 1, rc.Row)
		require.NotEqual(t, 1, rc.Col)
	}
}
