package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lithiumgraph/nlcore/core"
)

// TestMainStructureHashIgnoresEntityId is the load-bearing property for the
// group engine (package nlgroup): two graphs built with the same shape but
// distinct concrete variables must hash equal (spec S3).
func TestMainStructureHashIgnoresEntityId(t *testing.T) {
	g1 := core.NewExpressionGraph()
	v0 := g1.AddVariable(0)
	out1 := g1.AddNary(core.Mul, []core.ExpressionHandle{v0, v0})
	g1.AddObjectiveOutput(out1)

	g2 := core.NewExpressionGraph()
	v1 := g2.AddVariable(41)
	out2 := g2.AddNary(core.Mul, []core.ExpressionHandle{v1, v1})
	g2.AddObjectiveOutput(out2)

	require.Equal(t, g1.MainStructureHash(), g2.MainStructureHash())

	seed1 := g1.MainStructureHash()
	seed2 := g2.MainStructureHash()
	require.Equal(t, g1.ObjectiveStructureHash(seed1), g2.ObjectiveStructureHash(seed2))
}

func TestMainStructureHashDistinguishesShape(t *testing.T) {
	g1 := core.NewExpressionGraph()
	v0 := g1.AddVariable(0)
	g1.AddNary(core.Mul, []core.ExpressionHandle{v0, v0})

	g2 := core.NewExpressionGraph()
	v1 := g2.AddVariable(0)
	g2.AddNary(core.Add, []core.ExpressionHandle{v1, v1})

	require.NotEqual(t, g1.MainStructureHash(), g2.MainStructureHash())
}

func TestMainStructureHashDistinguishesConstantValue(t *testing.T) {
	g1 := core.NewExpressionGraph()
	g1.AddConstant(1.0)

	g2 := core.NewExpressionGraph()
	g2.AddConstant(2.0)

	require.NotEqual(t, g1.MainStructureHash(), g2.MainStructureHash())
}

func TestNaryOperandOrderAffectsHash(t *testing.T) {
	g1 := core.NewExpressionGraph()
	a := g1.AddVariable(0)
	b := g1.AddVariable(1)
	g1.AddNary(core.Add, []core.ExpressionHandle{a, b})

	g2 := core.NewExpressionGraph()
	c := g2.AddVariable(0)
	d := g2.AddVariable(1)
	g2.AddNary(core.Add, []core.ExpressionHandle{d, c})

	require.NotEqual(t, g1.MainStructureHash(), g2.MainStructureHash())
}
