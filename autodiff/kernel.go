package autodiff

// ConstraintKernel is the per-group evaluator built once from a
// representative Program and its Structure. Every call is instance-scoped:
// x is the model's full global primal vector, varIdx maps the kernel's
// local variable positions to columns of x (the instance's own
// GraphInstance.Variables), and p is that instance's own constants slice,
// already dense and local (constants are never shared across instances the
// way variables are, so no global gather is needed for p).
//
// FEval and JacEval write into caller-provided local windows directly
// (values and Jacobian entries for one constraint instance are contiguous
// in the model's global constraint residual/Jacobian arrays, so the caller
// just slices the window and advances its own pointer). HessEval instead
// scatter-adds into the model-wide Hessian buffer via hessIdx, because
// multiple constraint instances can contribute to the same global
// (row, col) slot.
type ConstraintKernel struct {
	Structure *Structure

	FEval    func(x, p []float64, varIdx []int, y []float64) error
	JacEval  func(x, p []float64, varIdx []int, jac []float64) error
	HessEval func(x, p, w []float64, varIdx, hessIdx []int, hess []float64) error
}

// ObjectiveKernel mirrors ConstraintKernel for an objective group.
// FEval adds its scalar contribution into acc (the model objective value is
// a sum over groups). GradEval and HessEval both scatter-add, since the
// objective gradient and Hessian share global columns/slots across groups
// the same way constraint Hessians do.
type ObjectiveKernel struct {
	Structure *Structure

	FEval    func(x, p []float64, varIdx []int, acc *float64) error
	GradEval func(x, p []float64, varIdx, gradIdx []int, grad []float64) error
	HessEval func(x, p []float64, w float64, varIdx, hessIdx []int, hess []float64) error
}

func gather(x []float64, varIdx []int, dst []float64) {
	for i, col := range varIdx {
		dst[i] = x[col]
	}
}

// BuildConstraintKernel closes a Program and its Structure into a
// ConstraintKernel. prog and structure must have come from the same Trace
// call (structure analysis is meaningless against a different program).
func BuildConstraintKernel(prog *Program, structure *Structure) *ConstraintKernel {
	nx := prog.Nx
	return &ConstraintKernel{
		Structure: structure,
		FEval: func(x, p []float64, varIdx []int, y []float64) error {
			localX := make([]float64, nx)
			gather(x, varIdx, localX)
			vals, err := EvalValues(prog, localX, p)
			if err != nil {
				return err
			}
			copy(y, vals)
			return nil
		},
		JacEval: func(x, p []float64, varIdx []int, jac []float64) error {
			localX := make([]float64, nx)
			gather(x, varIdx, localX)
			_, jacDense, err := EvalJacobian(prog, localX, p)
			if err != nil {
				return err
			}
			for k, rc := range structure.Jacobian {
				jac[k] = jacDense[rc.Row][rc.Col]
			}
			return nil
		},
		HessEval: func(x, p, w []float64, varIdx, hessIdx []int, hess []float64) error {
			localX := make([]float64, nx)
			gather(x, varIdx, localX)
			hessDense, err := EvalHessianWeighted(prog, localX, p, w)
			if err != nil {
				return err
			}
			for k, rc := range structure.Hessian {
				hess[hessIdx[k]] += hessDense[rc.Row*nx+rc.Col]
			}
			return nil
		},
	}
}

// BuildObjectiveKernel mirrors BuildConstraintKernel for the objective
// group. The objective Program always has Ny == 1; FEval sums over Ny
// defensively rather than assuming that invariant holds.
func BuildObjectiveKernel(prog *Program, structure *Structure) *ObjectiveKernel {
	nx := prog.Nx
	return &ObjectiveKernel{
		Structure: structure,
		FEval: func(x, p []float64, varIdx []int, acc *float64) error {
			localX := make([]float64, nx)
			gather(x, varIdx, localX)
			vals, err := EvalValues(prog, localX, p)
			if err != nil {
				return err
			}
			for _, v := range vals {
				*acc += v
			}
			return nil
		},
		GradEval: func(x, p []float64, varIdx, gradIdx []int, grad []float64) error {
			localX := make([]float64, nx)
			gather(x, varIdx, localX)
			_, jacDense, err := EvalJacobian(prog, localX, p)
			if err != nil {
				return err
			}
			for k, rc := range structure.Jacobian {
				grad[gradIdx[k]] += jacDense[rc.Row][rc.Col]
			}
			return nil
		},
		HessEval: func(x, p []float64, w float64, varIdx, hessIdx []int, hess []float64) error {
			localX := make([]float64, nx)
			gather(x, varIdx, localX)
			hessDense, err := EvalHessianWeighted(prog, localX, p, []float64{w})
			if err != nil {
				return err
			}
			for k, rc := range structure.Hessian {
				hess[hessIdx[k]] += hessDense[rc.Row*nx+rc.Col]
			}
			return nil
		},
	}
}
