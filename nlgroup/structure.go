package nlgroup

import "github.com/lithiumgraph/nlcore/core"

// CalculateConstraintGraphInstancesOffset walks the constraint groups in
// storage order, assigns each constraint-carrying instance a contiguous
// output block of width group.Structure.Ny, and returns the total number
// of nonlinear constraint rows. Must run after the final
// AggregateConstraintGroups and before any Jacobian-structure or
// evaluation call.
func (e *Evaluator) CalculateConstraintGraphInstancesOffset() int {
	e.constraintOffsets = make(map[int]int)
	running := 0
	for _, g := range e.ConstraintGroups {
		ny := 0
		if g.Structure != nil {
			ny = g.Structure.Ny
		}
		for _, inst := range g.InstanceIndices {
			e.constraintOffsets[inst] = running
			running += ny
		}
	}
	e.totalNLRows = running
	return running
}

// TotalNonlinearRows reports the value last computed by
// CalculateConstraintGraphInstancesOffset.
func (e *Evaluator) TotalNonlinearRows() int { return e.totalNLRows }

// ConstraintRowOffset reports the nonlinear-block-relative row offset
// CalculateConstraintGraphInstancesOffset assigned to inst. Only valid for
// instances carrying a constraint output.
func (e *Evaluator) ConstraintRowOffset(inst int) int { return e.constraintOffsets[inst] }

// AnalyzeConstraintsJacobianStructure returns the global (row, col) COO
// arrays of d(constraints)/dx in nonlinear-row space, offset by rowBase
// (the number of linear+quadratic rows preceding the nonlinear block).
func (e *Evaluator) AnalyzeConstraintsJacobianStructure(rowBase int) (rowsGlobal, colsGlobal []int) {
	for _, g := range e.ConstraintGroups {
		if g.Structure == nil || !g.Structure.HasJacobian {
			continue
		}
		for _, inst := range g.InstanceIndices {
			instanceRowBase := rowBase + e.constraintOffsets[inst]
			vars := e.instances[inst].Variables
			for _, rc := range g.Structure.Jacobian {
				rowsGlobal = append(rowsGlobal, rc.Row+instanceRowBase)
				colsGlobal = append(colsGlobal, int(vars[rc.Col]))
			}
		}
	}
	return rowsGlobal, colsGlobal
}

// AnalyzeObjectiveGradientStructure interns each (instance, local column)
// entry's global variable into gradMap (shared with whatever else
// contributes to the same sparse objective gradient, e.g. package model's
// linear/quadratic objective parts), and stores the resolved per-entry
// slot into each group's GradientIndices.
func (e *Evaluator) AnalyzeObjectiveGradientStructure(gradMap *core.IntColumnMap) {
	for _, g := range e.ObjectiveGroups {
		if g.Structure == nil || !g.Structure.HasJacobian {
			continue
		}
		localNnz := len(g.Structure.Jacobian)
		g.GradientIndices = make([]int, len(g.InstanceIndices)*localNnz)
		for j, inst := range g.InstanceIndices {
			vars := e.instances[inst].Variables
			for k, rc := range g.Structure.Jacobian {
				col := int(vars[rc.Col])
				g.GradientIndices[j*localNnz+k] = gradMap.Intern(col)
			}
		}
	}
}

// AnalyzeHessianStructure interns every group's Hessian entries into m,
// objective groups first, then constraint groups (spec §4.6.7; the order
// only affects cache locality, not correctness), storing resolved slots
// into each group's HessianIndices.
func (e *Evaluator) AnalyzeHessianStructure(m *core.HessianIndexMap) {
	for _, g := range e.ObjectiveGroups {
		e.internGroupHessian(g, m)
	}
	for _, g := range e.ConstraintGroups {
		e.internGroupHessian(g, m)
	}
}

func (e *Evaluator) internGroupHessian(g *Group, m *core.HessianIndexMap) {
	if g.Structure == nil || !g.Structure.HasHessian {
		return
	}
	localNnz := len(g.Structure.Hessian)
	g.HessianIndices = make([]int, len(g.InstanceIndices)*localNnz)
	for j, inst := range g.InstanceIndices {
		vars := e.instances[inst].Variables
		for k, rc := range g.Structure.Hessian {
			row := int(vars[rc.Row])
			col := int(vars[rc.Col])
			g.HessianIndices[j*localNnz+k] = m.Intern(row, col)
		}
	}
}
