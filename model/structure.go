package model

import (
	"errors"

	"github.com/lithiumgraph/nlcore/autodiff"
	"github.com/lithiumgraph/nlcore/core"
	"github.com/lithiumgraph/nlcore/nlgroup"
)

// wrapGroupError translates a raw nlgroup sentinel into the matching
// model-level one (so a caller can match model.ErrGroupIndexOutOfRange
// with errors.Is without importing nlgroup itself) and wraps it with the
// offending group context.
func wrapGroupError(err error, group int) error {
	switch {
	case errors.Is(err, nlgroup.ErrGroupIndexOutOfRange):
		return newModelError(ErrGroupIndexOutOfRange, ConstraintNonlinear, group)
	case errors.Is(err, nlgroup.ErrKernelLoadFailure):
		return newModelError(ErrKernelLoadFailure, ConstraintNonlinear, group)
	default:
		return newModelError(err, ConstraintNonlinear, group)
	}
}

// structureInfo is the global row/column/slot layout computed once by
// Structure and read by every Eval* call thereafter.
type structureInfo struct {
	nLin, nQuad, nNL int

	jacRows, jacCols []int // global COO, order: linear | quadratic | nonlinear

	gradMap         *core.IntColumnMap
	linObjGradSlots []int // slot for each linearObjective.AnalyzeJacobianStructure() column, in order
	quadObjGradSlots []int

	hessMap *core.HessianIndexMap
}

// Structure runs the one-time structure phase (spec §4.7 point 1):
// aggregates and installs every nonlinear group's AD program, computes
// row offsets, and builds the global Jacobian COO, sparse gradient column
// list, and shared Hessian index map.
func (m *Model) Structure() error {
	if err := m.installNLGroups(); err != nil {
		return err
	}
	m.nl.CalculateConstraintGraphInstancesOffset()

	s := &structureInfo{
		nLin:  m.linearConstraints.NRows(),
		nQuad: m.quadraticConstraints.NRows(),
		nNL:   m.nl.TotalNonlinearRows(),
	}

	m.buildJacobianStructure(s)
	m.buildGradientStructure(s)
	m.buildHessianStructure(s)
	m.buildRowMap(s)

	m.s = s
	m.structureReady = true
	return nil
}

// installNLGroups aggregates every constraint- and objective-carrying
// instance into groups, traces each representative, derives its symbolic
// structure, and installs the resulting kernel, per spec §4.7's
// "aggregate C6 groups; run C2+C3 per group; install kernel blocks".
func (m *Model) installNLGroups() error {
	nCGroups := m.nl.AggregateConstraintGroups()
	for group := 0; group < nCGroups; group++ {
		if m.nl.ConstraintGroups[group].Structure != nil {
			continue
		}
		rep, err := m.nl.ConstraintGroupRepresentative(group)
		if err != nil {
			return wrapGroupError(err, group)
		}
		prog, x0, p0, err := m.traceRepresentative(rep, true)
		if err != nil {
			return wrapGroupError(err, group)
		}
		structure, err := autodiff.AnalyzeStructure(prog, x0, p0, m.opts.triangle, m.opts.zeroTol)
		if err != nil {
			return wrapGroupError(err, group)
		}
		kernel := autodiff.BuildConstraintKernel(prog, structure)
		if err := m.nl.AssignConstraintGroupAutodiffStructure(group, structure, kernel); err != nil {
			return wrapGroupError(err, group)
		}
	}

	// Objective-group errors are returned unwrapped: ConstraintIndex has no
	// kind for "the objective", so there is no honest *ModelError context
	// to attach beyond the group number already in the underlying error.
	nOGroups := m.nl.AggregateObjectiveGroups()
	for group := 0; group < nOGroups; group++ {
		if m.nl.ObjectiveGroups[group].Structure != nil {
			continue
		}
		rep, err := m.nl.ObjectiveGroupRepresentative(group)
		if err != nil {
			return err
		}
		prog, x0, p0, err := m.traceRepresentative(rep, false)
		if err != nil {
			return err
		}
		structure, err := autodiff.AnalyzeStructure(prog, x0, p0, m.opts.triangle, m.opts.zeroTol)
		if err != nil {
			return err
		}
		kernel := autodiff.BuildObjectiveKernel(prog, structure)
		if err := m.nl.AssignObjectiveGroupAutodiffStructure(group, structure, kernel); err != nil {
			return err
		}
	}
	return nil
}

// traceRepresentative runs C2 (Trace) over a group representative's graph
// and returns the seed point (each variable's registered Start value,
// falling back to 1 for an id outside the model's variable range, which
// cannot happen for a well-formed model but is guarded rather than
// assumed) that the caller feeds into C3 (autodiff.AnalyzeStructure).
func (m *Model) traceRepresentative(inst int, constraint bool) (prog *autodiff.Program, x0, p0 []float64, err error) {
	g := m.nl.Graph(inst)
	instance := m.nl.Instance(inst)

	outputs := g.ObjectiveOutputs
	if constraint {
		outputs = g.ConstraintOutputs
	}
	prog, err = autodiff.Trace(g, instance.Variables, outputs)
	if err != nil {
		return nil, nil, nil, err
	}

	x0 = make([]float64, prog.Nx)
	for i, id := range instance.Variables {
		if int(id) < len(m.variables) {
			x0[i] = m.variables[id].Start
		} else {
			x0[i] = 1
		}
	}
	p0 = instance.Constants
	if len(p0) != prog.Np {
		p0 = make([]float64, prog.Np)
	}
	return prog, x0, p0, nil
}

func (m *Model) buildJacobianStructure(s *structureInfo) {
	linRows, linCols := m.linearConstraints.AnalyzeJacobianStructure()
	quadRows, quadCols := m.quadraticConstraints.AnalyzeJacobianStructure()
	nlRows, nlCols := m.nl.AnalyzeConstraintsJacobianStructure(s.nLin + s.nQuad)

	s.jacRows = append(s.jacRows, linRows...)
	s.jacCols = append(s.jacCols, linCols...)
	for _, r := range quadRows {
		s.jacRows = append(s.jacRows, r+s.nLin)
	}
	s.jacCols = append(s.jacCols, quadCols...)
	s.jacRows = append(s.jacRows, nlRows...)
	s.jacCols = append(s.jacCols, nlCols...)
}

func (m *Model) buildGradientStructure(s *structureInfo) {
	s.gradMap = core.NewIntColumnMap()
	if m.linearObjective != nil {
		_, cols := m.linearObjective.AnalyzeJacobianStructure()
		s.linObjGradSlots = make([]int, len(cols))
		for i, c := range cols {
			s.linObjGradSlots[i] = s.gradMap.Intern(c)
		}
	}
	if m.quadraticObjective != nil {
		_, cols := m.quadraticObjective.AnalyzeJacobianStructure()
		s.quadObjGradSlots = make([]int, len(cols))
		for i, c := range cols {
			s.quadObjGradSlots[i] = s.gradMap.Intern(c)
		}
	}
	m.nl.AnalyzeObjectiveGradientStructure(s.gradMap)
}

func (m *Model) buildHessianStructure(s *structureInfo) {
	s.hessMap = core.NewHessianIndexMap(m.opts.triangle)
	if m.quadraticObjective != nil {
		m.quadraticObjective.AnalyzeHessianStructure(s.hessMap)
	}
	m.quadraticConstraints.AnalyzeHessianStructure(s.hessMap)
	m.nl.AnalyzeHessianStructure(s.hessMap)
}

// buildRowMap derives nl_constraint_map_ext2int (spec §4.7 point 3): the
// global row each externally-added constraint landed at, after the
// internal [linear | quadratic | nonlinear] reorder.
func (m *Model) buildRowMap(s *structureInfo) {
	quadBase := s.nLin
	nlBase := s.nLin + s.nQuad
	m.extToInt = make([]int, len(m.extOrder))
	for i, ci := range m.extOrder {
		switch ci.Kind {
		case ConstraintLinear:
			m.extToInt[i] = ci.Index
		case ConstraintQuadratic:
			m.extToInt[i] = quadBase + ci.Index
		case ConstraintNonlinear:
			inst := m.nlCInstOf[ci.Index]
			m.extToInt[i] = nlBase + m.nl.ConstraintRowOffset(inst)
		}
	}
}

// TotalConstraintRows reports the total number of rows in the internal
// [linear | quadratic | nonlinear] row order, valid after Structure.
func (m *Model) TotalConstraintRows() int { return m.s.nLin + m.s.nQuad + m.s.nNL }

// JacobianStructure returns the global Jacobian COO pattern, in the same
// row order every EvalJacG call writes values in.
func (m *Model) JacobianStructure() (rows, cols []int) { return m.s.jacRows, m.s.jacCols }

// GradientStructure returns the sparse objective-gradient column list, in
// the same slot order every EvalGradF call writes values in.
func (m *Model) GradientStructure() []int { return m.s.gradMap.Cols() }

// HessianStructure returns the global Hessian COO pattern, restricted to
// the model's configured triangle, in the same slot order every EvalH
// call writes values in.
func (m *Model) HessianStructure() (rows, cols []int) { return m.s.hessMap.Rows(), m.s.hessMap.Cols() }

// RowExternalToInternal maps the i-th externally-added constraint (add
// order) to its row in the internal [linear | quadratic | nonlinear]
// layout.
func (m *Model) RowExternalToInternal(i int) int { return m.extToInt[i] }
