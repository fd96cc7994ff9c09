package builder

import (
	"testing"

	"github.com/lithiumgraph/nlcore/core"
)

// evalFlatSum walks the narrow Add-of-(Mul|Var|Const|Neg) shapes BuildGraph
// ever produces directly, so these tests stay free of a dependency on
// package autodiff.
func evalFlatSum(g *core.ExpressionGraph, h core.ExpressionHandle, x []float64) float64 {
	switch h.Kind {
	case core.KindConstant:
		return g.Constant(h.Index).Value
	case core.KindVariable:
		return x[g.Variable(h.Index).Ref]
	case core.KindUnary:
		u := g.Unary(h.Index)
		return -evalFlatSum(g, u.Operand, x)
	case core.KindNary:
		n := g.Nary(h.Index)
		switch n.Op {
		case core.Add:
			var sum float64
			for _, op := range n.Operands {
				sum += evalFlatSum(g, op, x)
			}
			return sum
		case core.Mul:
			prod := 1.0
			for _, op := range n.Operands {
				prod *= evalFlatSum(g, op, x)
			}
			return prod
		}
	}
	return 0
}

func TestAffineConstructorCoefficientShortcuts(t *testing.T) {
	f := core.ScalarAffineFunction{
		Variables:    []core.EntityId{0, 1, 2},
		Coefficients: []float64{1, -1, 3},
		Constant:     5,
	}
	g, h, err := BuildGraph(nil, Affine(f))
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	x := []float64{2, 3, 4}
	// 1*2 + (-1)*3 + 3*4 + 5 = 2 - 3 + 12 + 5 = 16
	if got := evalFlatSum(g, h, x); got != 16 {
		t.Fatalf("evalFlatSum = %v, want 16", got)
	}
}

func TestZeroCoefficientToleranceDropsTerm(t *testing.T) {
	f := core.ScalarAffineFunction{
		Variables:    []core.EntityId{0, 1},
		Coefficients: []float64{1e-15, 2},
	}
	g, h, err := BuildGraph([]Option{WithZeroCoefficientTolerance(1e-9)}, Affine(f))
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	x := []float64{1000, 3}
	// The 1e-15 term is dropped regardless of x[0]; only 2*3 = 6 remains.
	if got := evalFlatSum(g, h, x); got != 6 {
		t.Fatalf("evalFlatSum = %v, want 6", got)
	}
}

func TestQuadraticAndNonlinearConstructorsCombine(t *testing.T) {
	quad := core.ScalarQuadraticFunction{
		QuadraticRows:  []core.EntityId{0},
		QuadraticCols:  []core.EntityId{0},
		QuadraticCoefs: []float64{2},
	}
	nl := func(g *core.ExpressionGraph) core.ExpressionHandle {
		v1 := g.AddVariable(1)
		return g.AddNary(core.Mul, []core.ExpressionHandle{v1, v1})
	}
	g, h, err := BuildGraph(nil, Quadratic(quad), Nonlinear(nl))
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	x := []float64{3, 4}
	// 2*x0^2 + x1^2 = 2*9 + 16 = 34
	if got := evalFlatSum(g, h, x); got != 34 {
		t.Fatalf("evalFlatSum = %v, want 34", got)
	}
}

func TestBuildGraphRejectsNilConstructor(t *testing.T) {
	_, _, err := BuildGraph(nil, Affine(core.ScalarAffineFunction{}), nil)
	if err == nil {
		t.Fatal("expected error for nil constructor, got nil")
	}
}

func TestBuildGraphEmptyReturnsZero(t *testing.T) {
	g, h, err := BuildGraph(nil)
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	if got := evalFlatSum(g, h, nil); got != 0 {
		t.Fatalf("evalFlatSum = %v, want 0", got)
	}
}
