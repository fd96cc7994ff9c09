package nlgroup

func (e *Evaluator) columns(inst int) []int {
	v := e.instances[inst].Variables
	cols := make([]int, len(v))
	for i, id := range v {
		cols[i] = int(id)
	}
	return cols
}

// EvalConstraints writes every nonlinear constraint group's contribution
// into f, at the offsets CalculateConstraintGraphInstancesOffset assigned.
func (e *Evaluator) EvalConstraints(x, f []float64) error {
	for _, g := range e.ConstraintGroups {
		if g.Structure == nil {
			continue
		}
		ny := g.Structure.Ny
		for _, inst := range g.InstanceIndices {
			base := e.constraintOffsets[inst]
			if err := g.ConstraintKernel.FEval(x, e.instances[inst].Constants, e.columns(inst), f[base:base+ny]); err != nil {
				return err
			}
		}
	}
	return nil
}

// EvalObjective returns the sum of every objective group's contribution.
func (e *Evaluator) EvalObjective(x []float64) (float64, error) {
	var acc float64
	for _, g := range e.ObjectiveGroups {
		if g.Structure == nil {
			continue
		}
		for _, inst := range g.InstanceIndices {
			if err := g.ObjectiveKernel.FEval(x, e.instances[inst].Constants, e.columns(inst), &acc); err != nil {
				return 0, err
			}
		}
	}
	return acc, nil
}

// EvalConstraintsJacobian writes every nonlinear constraint group's dense
// Jacobian values into jac, contiguously, in the same group/instance order
// AnalyzeConstraintsJacobianStructure walked.
func (e *Evaluator) EvalConstraintsJacobian(x, jac []float64) error {
	ptr := 0
	for _, g := range e.ConstraintGroups {
		if g.Structure == nil || !g.Structure.HasJacobian {
			continue
		}
		localNnz := len(g.Structure.Jacobian)
		for _, inst := range g.InstanceIndices {
			if err := g.ConstraintKernel.JacEval(x, e.instances[inst].Constants, e.columns(inst), jac[ptr:ptr+localNnz]); err != nil {
				return err
			}
			ptr += localNnz
		}
	}
	return nil
}

// EvalObjectiveGradient scatter-adds every objective group's local
// gradient into gradF via each instance's precomputed GradientIndices
// slice.
func (e *Evaluator) EvalObjectiveGradient(x, gradF []float64) error {
	for _, g := range e.ObjectiveGroups {
		if g.Structure == nil || !g.Structure.HasJacobian {
			continue
		}
		localNnz := len(g.Structure.Jacobian)
		for j, inst := range g.InstanceIndices {
			idx := g.GradientIndices[j*localNnz : (j+1)*localNnz]
			if err := g.ObjectiveKernel.GradEval(x, e.instances[inst].Constants, e.columns(inst), idx, gradF); err != nil {
				return err
			}
		}
	}
	return nil
}

// EvalLagrangianHessian scatter-adds the objective pass (weighted by
// sigma) then the constraint pass (weighted by the matching slice of
// lambda, width group.Structure.Ny per instance) into h. h is not zeroed
// here; the caller (package model) owns that.
func (e *Evaluator) EvalLagrangianHessian(x, lambda []float64, sigma float64, h []float64) error {
	for _, g := range e.ObjectiveGroups {
		if g.Structure == nil || !g.Structure.HasHessian {
			continue
		}
		localNnz := len(g.Structure.Hessian)
		for j, inst := range g.InstanceIndices {
			idx := g.HessianIndices[j*localNnz : (j+1)*localNnz]
			if err := g.ObjectiveKernel.HessEval(x, e.instances[inst].Constants, sigma, e.columns(inst), idx, h); err != nil {
				return err
			}
		}
	}
	for _, g := range e.ConstraintGroups {
		if g.Structure == nil || !g.Structure.HasHessian {
			continue
		}
		ny := g.Structure.Ny
		localNnz := len(g.Structure.Hessian)
		for j, inst := range g.InstanceIndices {
			base := e.constraintOffsets[inst]
			w := lambda[base : base+ny]
			idx := g.HessianIndices[j*localNnz : (j+1)*localNnz]
			if err := g.ConstraintKernel.HessEval(x, e.instances[inst].Constants, w, e.columns(inst), idx, h); err != nil {
				return err
			}
		}
	}
	return nil
}
