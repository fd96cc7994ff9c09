package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lithiumgraph/nlcore/core"
)

func TestAddVariableIdempotent(t *testing.T) {
	g := core.NewExpressionGraph()
	h1 := g.AddVariable(7)
	h2 := g.AddVariable(7)
	require.Equal(t, h1, h2)
	require.Equal(t, 1, g.NVariables())

	h3 := g.AddVariable(8)
	require.NotEqual(t, h1, h3)
	require.Equal(t, 2, g.NVariables())
}

func TestAddConstantNotDeduped(t *testing.T) {
	g := core.NewExpressionGraph()
	h1 := g.AddConstant(3.0)
	h2 := g.AddConstant(3.0)
	require.NotEqual(t, h1, h2)
	require.Equal(t, 2, g.NConstants())
}

func TestAddTernaryRequiresCompareCondition(t *testing.T) {
	g := core.NewExpressionGraph()
	a := g.AddVariable(0)
	b := g.AddVariable(1)

	// Cond must be a compare Binary.
	notCompare := g.AddBinary(core.Sub, a, b)
	_, err := g.AddTernary(core.IfThenElse, notCompare, a, b)
	require.ErrorIs(t, err, core.ErrInvalidComparisonExpression)

	cond := g.AddBinary(core.LessEqual, a, b)
	h, err := g.AddTernary(core.IfThenElse, cond, a, b)
	require.NoError(t, err)
	require.Equal(t, core.KindTernary, h.Kind)
}

func TestAppendNary(t *testing.T) {
	g := core.NewExpressionGraph()
	a := g.AddVariable(0)
	b := g.AddVariable(1)
	sum := g.AddNary(core.Add, []core.ExpressionHandle{a})

	require.NoError(t, g.AppendNary(sum, b))

	op, err := g.GetNaryOperator(sum)
	require.NoError(t, err)
	require.Equal(t, core.Add, op)

	err = g.AppendNary(a, b)
	require.ErrorIs(t, err, core.ErrNotNaryHandle)
}

func TestAddRepeatNary(t *testing.T) {
	g := core.NewExpressionGraph()
	a := g.AddVariable(0)
	h := g.AddRepeatNary(core.Mul, a, 5)
	op, err := g.GetNaryOperator(h)
	require.NoError(t, err)
	require.Equal(t, core.Mul, op)
}
