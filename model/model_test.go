package model_test

import (
	"math"
	"testing"

	"github.com/lithiumgraph/nlcore/core"
	"github.com/lithiumgraph/nlcore/model"
)

func square(g *core.ExpressionGraph, h core.ExpressionHandle) core.ExpressionHandle {
	return g.AddNary(core.Mul, []core.ExpressionHandle{h, h})
}

// buildMixedDriver is the (S5) scenario: two variables x0, x1; a linear
// equality constraint x0 + x1 == 1; a nonlinear inequality constraint
// x0^2 + x1^2 <= 1; objective minimize (x0-1)^2 + x1^2.
func buildMixedDriver(t *testing.T) *model.Model {
	t.Helper()
	m := model.NewModel()

	x0 := m.AddVariable(math.Inf(-1), math.Inf(1), 1, "x0")
	x1 := m.AddVariable(math.Inf(-1), math.Inf(1), 0, "x1")

	m.AddLinearConstraint(core.ScalarAffineFunction{
		Variables:    []core.EntityId{x0, x1},
		Coefficients: []float64{1, 1},
	}, model.Equal, 1)

	gc := core.NewExpressionGraph()
	vx0 := gc.AddVariable(0)
	vx1 := gc.AddVariable(1)
	sumSquares := gc.AddNary(core.Add, []core.ExpressionHandle{square(gc, vx0), square(gc, vx1)})
	if _, err := m.AddSingleNLConstraint(gc, []core.EntityId{x0, x1}, nil, sumSquares, model.LessEqual, 1); err != nil {
		t.Fatalf("AddSingleNLConstraint: %v", err)
	}

	go2 := core.NewExpressionGraph()
	ox0 := go2.AddVariable(0)
	ox1 := go2.AddVariable(1)
	diff := go2.AddBinary(core.Sub, ox0, go2.AddConstant(1))
	objExpr := go2.AddNary(core.Add, []core.ExpressionHandle{square(go2, diff), square(go2, ox1)})
	if err := m.SetNonlinearObjective(go2, []core.EntityId{x0, x1}, nil, objExpr, model.Minimize); err != nil {
		t.Fatalf("SetNonlinearObjective: %v", err)
	}

	return m
}

func TestMixedDriverRowOrderAndStructure(t *testing.T) {
	m := buildMixedDriver(t)
	if err := m.Structure(); err != nil {
		t.Fatalf("Structure: %v", err)
	}

	if got := m.TotalConstraintRows(); got != 2 {
		t.Fatalf("TotalConstraintRows = %d, want 2", got)
	}
	if got := m.RowExternalToInternal(0); got != 0 {
		t.Fatalf("linear constraint internal row = %d, want 0", got)
	}
	if got := m.RowExternalToInternal(1); got != 1 {
		t.Fatalf("nonlinear constraint internal row = %d, want 1", got)
	}

	hrows, hcols := m.HessianStructure()
	if len(hrows) != 2 {
		t.Fatalf("Hessian sparsity length = %d, want 2", len(hrows))
	}
	seen := map[[2]int]bool{}
	for i := range hrows {
		seen[[2]int{hrows[i], hcols[i]}] = true
	}
	if !seen[[2]int{0, 0}] || !seen[[2]int{1, 1}] {
		t.Fatalf("Hessian sparsity = %v/%v, want {(0,0),(1,1)}", hrows, hcols)
	}
}

func TestMixedDriverEvalAtOptimum(t *testing.T) {
	m := buildMixedDriver(t)
	if err := m.Structure(); err != nil {
		t.Fatalf("Structure: %v", err)
	}

	x := []float64{1, 0}
	f, err := m.EvalF(x)
	if err != nil {
		t.Fatalf("EvalF: %v", err)
	}
	if f != 0 {
		t.Fatalf("EvalF(1,0) = %v, want 0", f)
	}

	g := make([]float64, m.TotalConstraintRows())
	if err := m.EvalG(x, g); err != nil {
		t.Fatalf("EvalG: %v", err)
	}
	if g[0] != 1 {
		t.Fatalf("linear row = %v, want 1", g[0])
	}
	if g[1] != 1 {
		t.Fatalf("nonlinear row = %v, want 1", g[1])
	}

	hrows, _ := m.HessianStructure()
	h := make([]float64, len(hrows))
	lambda := []float64{0, 1} // lambda1 = 1 on the nonlinear constraint
	if err := m.EvalH(x, lambda, 1, h); err != nil {
		t.Fatalf("EvalH: %v", err)
	}
	// H = diag(2 + 2*lambda1, 2 + 2*lambda1) = diag(4, 4)
	for i, v := range h {
		if v != 4 {
			t.Fatalf("h[%d] = %v, want 4", i, v)
		}
	}
}
