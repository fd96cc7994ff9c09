package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lithiumgraph/nlcore/core"
)

func TestUnpackLEConstantRight(t *testing.T) {
	g := core.NewExpressionGraph()
	f := g.AddVariable(0)
	c := g.AddConstant(5)
	expr := g.AddBinary(core.LessEqual, f, c)

	real, lb, ub, err := core.UnpackComparisonExpression(g, expr)
	require.NoError(t, err)
	require.Equal(t, f, real)
	require.True(t, math.IsInf(lb, -1))
	require.Equal(t, 5.0, ub)
}

func TestUnpackGEConstantLeft(t *testing.T) {
	g := core.NewExpressionGraph()
	gvar := g.AddVariable(0)
	c := g.AddConstant(5)
	expr := g.AddBinary(core.GreaterEqual, c, gvar)

	real, lb, ub, err := core.UnpackComparisonExpression(g, expr)
	require.NoError(t, err)
	require.Equal(t, gvar, real)
	require.True(t, math.IsInf(lb, -1))
	require.Equal(t, 5.0, ub)
}

func TestUnpackEqualNeitherConstant(t *testing.T) {
	g := core.NewExpressionGraph()
	f := g.AddVariable(0)
	other := g.AddVariable(1)
	expr := g.AddBinary(core.Equal, f, other)

	real, lb, ub, err := core.UnpackComparisonExpression(g, expr)
	require.NoError(t, err)
	require.Equal(t, core.KindBinary, real.Kind)
	require.Equal(t, 0.0, lb)
	require.Equal(t, 0.0, ub)
}

func TestUnpackRejectsNonCompareTopLevel(t *testing.T) {
	g := core.NewExpressionGraph()
	a := g.AddVariable(0)
	b := g.AddVariable(1)
	expr := g.AddBinary(core.Sub, a, b)

	_, _, _, err := core.UnpackComparisonExpression(g, expr)
	require.ErrorIs(t, err, core.ErrInvalidComparisonExpression)
}

func TestUnpackRejectsStrictInequality(t *testing.T) {
	g := core.NewExpressionGraph()
	a := g.AddVariable(0)
	c := g.AddConstant(1)
	expr := g.AddBinary(core.LessThan, a, c)

	_, _, _, err := core.UnpackComparisonExpression(g, expr)
	require.ErrorIs(t, err, core.ErrInvalidComparisonExpression)
}
