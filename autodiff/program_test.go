package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lithiumgraph/nlcore/autodiff"
	"github.com/lithiumgraph/nlcore/core"
)

func TestTraceRejectsComparisonUsedAsValue(t *testing.T) {
	g := core.NewExpressionGraph()
	a := g.AddVariable(0)
	b := g.AddVariable(1)
	cond := g.AddBinary(core.LessEqual, a, b)

	_, err := autodiff.Trace(g, []core.EntityId{0, 1}, []core.ExpressionHandle{cond})
	require.ErrorIs(t, err, autodiff.ErrComparisonUsedAsValue)
}

func TestTraceRejectsUnboundVariable(t *testing.T) {
	g := core.NewExpressionGraph()
	a := g.AddVariable(0)

	_, err := autodiff.Trace(g, nil, []core.ExpressionHandle{a})
	require.ErrorIs(t, err, autodiff.ErrUnboundVariable)
}

func TestTraceSharesCommonSubexpression(t *testing.T) {
	// f = x*x + x*x, both occurrences of x*x use the same handle, so the
	// trace should only emit one Mul instruction for it.
	g := core.NewExpressionGraph()
	x := g.AddVariable(0)
	sq := g.AddNary(core.Mul, []core.ExpressionHandle{x, x})
	out := g.AddNary(core.Add, []core.ExpressionHandle{sq, sq})

	prog, err := autodiff.Trace(g, []core.EntityId{0}, []core.ExpressionHandle{out})
	require.NoError(t, err)

	f, jac, err := autodiff.EvalJacobian(prog, []float64{3}, nil)
	require.NoError(t, err)
	require.InDelta(t, 18, f[0], 1e-9) // 2*3^2
	require.InDelta(t, 12, jac[0][0], 1e-9) // d/dx 2x^2 = 4x = 12
}
