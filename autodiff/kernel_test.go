package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lithiumgraph/nlcore/autodiff"
	"github.com/lithiumgraph/nlcore/core"
)

// TestConstraintKernelGathersThroughVarIdx exercises the group-engine
// contract directly: the kernel is built once from a local (nx=1) Program,
// then evaluated twice against the same global x under different varIdx
// mappings, as nlgroup would for two instances of the same structural
// group (spec scenario S3's 100-instance Sin group, reduced to two).
func TestConstraintKernelGathersThroughVarIdx(t *testing.T) {
	g := core.NewExpressionGraph()
	x := g.AddVariable(0)
	out := g.AddUnary(core.Sin, x)

	prog, err := autodiff.Trace(g, []core.EntityId{0}, []core.ExpressionHandle{out})
	require.NoError(t, err)
	structure, err := autodiff.AnalyzeStructure(prog, []float64{1}, nil, autodiff.HessianUpper, autodiff.DefaultZeroTolerance)
	require.NoError(t, err)

	kernel := autodiff.BuildConstraintKernel(prog, structure)

	globalX := []float64{0.1, 0.2, 0.3}

	y0 := make([]float64, 1)
	require.NoError(t, kernel.FEval(globalX, nil, []int{0}, y0))
	require.InDelta(t, 0.0998334166, y0[0], 1e-9)

	y2 := make([]float64, 1)
	require.NoError(t, kernel.FEval(globalX, nil, []int{2}, y2))
	require.InDelta(t, 0.2955202067, y2[0], 1e-9)
}

func TestObjectiveKernelHessianScatterAdds(t *testing.T) {
	g := core.NewExpressionGraph()
	x := g.AddVariable(0)
	out := g.AddNary(core.Mul, []core.ExpressionHandle{x, x})

	prog, err := autodiff.Trace(g, []core.EntityId{0}, []core.ExpressionHandle{out})
	require.NoError(t, err)
	structure, err := autodiff.AnalyzeStructure(prog, []float64{1}, nil, autodiff.HessianUpper, autodiff.DefaultZeroTolerance)
	require.NoError(t, err)

	kernel := autodiff.BuildObjectiveKernel(prog, structure)

	globalHess := make([]float64, 4) // pretend a 2x2 global Hessian, slot (1,1) at index 3
	require.NoError(t, kernel.HessEval([]float64{5, 5}, nil, 1.0, []int{1}, []int{3}, globalHess))
	require.InDelta(t, 2, globalHess[3], 1e-9)

	// A second group contributing to the same slot must accumulate, not
	// overwrite.
	require.NoError(t, kernel.HessEval([]float64{5, 5}, nil, 1.0, []int{1}, []int{3}, globalHess))
	require.InDelta(t, 4, globalHess[3], 1e-9)
}
