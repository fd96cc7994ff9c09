package nlgroup

import (
	"github.com/lithiumgraph/nlcore/autodiff"
	"github.com/lithiumgraph/nlcore/core"
)

// Evaluator is the group engine: it owns every GraphInstance, the
// constraint- and objective-hash logs derived from them, the groups those
// logs aggregate into, and (after the structure phase) the global row/
// column bookkeeping needed to evaluate every group in one pass.
type Evaluator struct {
	instances []GraphInstance
	graphs    []*core.ExpressionGraph

	constraintHashLog []hashEntry
	objectiveHashLog  []hashEntry

	constraintWatermark int
	objectiveWatermark  int

	constraintGroupDict map[uint64]int
	objectiveGroupDict  map[uint64]int

	ConstraintGroups []*Group
	ObjectiveGroups  []*Group

	constraintMembership []membership
	objectiveMembership  []membership

	// constraintOffsets[instance] is the global row offset assigned to
	// that constraint-carrying instance by CalculateConstraintGraphInstancesOffset.
	constraintOffsets map[int]int
	totalNLRows       int
}

// NewEvaluator returns an empty group engine.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		constraintGroupDict: make(map[uint64]int),
		objectiveGroupDict:  make(map[uint64]int),
	}
}

// AddGraphInstance allocates a fresh instance slot and returns its index.
// The slot's variables/constants are not recorded until FinalizeGraphInstance.
func (e *Evaluator) AddGraphInstance() int {
	e.instances = append(e.instances, GraphInstance{})
	e.graphs = append(e.graphs, nil)
	e.constraintMembership = append(e.constraintMembership, membership{})
	e.objectiveMembership = append(e.objectiveMembership, membership{})
	return len(e.instances) - 1
}

// FinalizeGraphInstance stores idx's variables and constants, computes the
// graph's structural hash, and appends idx to the constraint- and/or
// objective-hash logs according to which output lists g carries.
func (e *Evaluator) FinalizeGraphInstance(idx int, g *core.ExpressionGraph, variables []core.EntityId, constants []float64) error {
	if idx < 0 || idx >= len(e.instances) {
		return ErrInstanceIndexOutOfRange
	}
	e.instances[idx] = GraphInstance{Variables: variables, Constants: constants}
	e.graphs[idx] = g

	base := g.MainStructureHash()
	if len(g.ConstraintOutputs) > 0 {
		h := g.ConstraintStructureHash(base)
		e.constraintHashLog = append(e.constraintHashLog, hashEntry{hash: h, index: idx})
	}
	if len(g.ObjectiveOutputs) > 0 {
		h := g.ObjectiveStructureHash(base)
		e.objectiveHashLog = append(e.objectiveHashLog, hashEntry{hash: h, index: idx})
	}
	return nil
}

// Instance returns the stored GraphInstance for idx.
func (e *Evaluator) Instance(idx int) GraphInstance { return e.instances[idx] }

// Graph returns the stored representative-candidate graph for idx (the
// graph every instance was finalized with, kept around only so group
// representatives can be traced).
func (e *Evaluator) Graph(idx int) *core.ExpressionGraph { return e.graphs[idx] }

// aggregate is shared by AggregateConstraintGroups and
// AggregateObjectiveGroups: it processes only the log suffix added since
// watermark, growing groups and membership in place, and returns the new
// watermark.
func aggregate(log []hashEntry, watermark int, dict map[uint64]int, groups *[]*Group, memberships []membership) int {
	for i := watermark; i < len(log); i++ {
		e := log[i]
		gi, ok := dict[e.hash]
		if !ok {
			gi = len(*groups)
			*groups = append(*groups, &Group{})
			dict[e.hash] = gi
		}
		g := (*groups)[gi]
		rank := len(g.InstanceIndices)
		g.InstanceIndices = append(g.InstanceIndices, e.index)
		memberships[e.index] = membership{group: gi, rank: rank, set: true}
	}
	return len(log)
}

// AggregateConstraintGroups processes every constraint-hash-log entry
// added since the last call and returns the new total constraint group
// count. It is idempotent when no instances were added (property P5).
func (e *Evaluator) AggregateConstraintGroups() int {
	e.constraintWatermark = aggregate(e.constraintHashLog, e.constraintWatermark, e.constraintGroupDict, &e.ConstraintGroups, e.constraintMembership)
	return len(e.ConstraintGroups)
}

// AggregateObjectiveGroups mirrors AggregateConstraintGroups for the
// objective-hash log.
func (e *Evaluator) AggregateObjectiveGroups() int {
	e.objectiveWatermark = aggregate(e.objectiveHashLog, e.objectiveWatermark, e.objectiveGroupDict, &e.ObjectiveGroups, e.objectiveMembership)
	return len(e.ObjectiveGroups)
}

// ConstraintGroupRepresentative returns the first instance index in the
// given constraint group. A group is never empty once created (groups are
// only allocated when their first instance is appended), so this cannot
// fail for an in-range group index.
func (e *Evaluator) ConstraintGroupRepresentative(group int) (int, error) {
	if group < 0 || group >= len(e.ConstraintGroups) {
		return 0, ErrGroupIndexOutOfRange
	}
	return e.ConstraintGroups[group].InstanceIndices[0], nil
}

// ObjectiveGroupRepresentative mirrors ConstraintGroupRepresentative for
// objective groups.
func (e *Evaluator) ObjectiveGroupRepresentative(group int) (int, error) {
	if group < 0 || group >= len(e.ObjectiveGroups) {
		return 0, ErrGroupIndexOutOfRange
	}
	return e.ObjectiveGroups[group].InstanceIndices[0], nil
}

// AssignConstraintGroupAutodiffStructure installs structure and kernel on
// a constraint group produced externally by package autodiff from the
// group's representative. ErrKernelLoadFailure guards against a nil
// kernel while the structure claims nonzero Jacobian/Hessian content.
func (e *Evaluator) AssignConstraintGroupAutodiffStructure(group int, structure *autodiff.Structure, kernel *autodiff.ConstraintKernel) error {
	if group < 0 || group >= len(e.ConstraintGroups) {
		return ErrGroupIndexOutOfRange
	}
	if kernel == nil && (structure.HasJacobian || structure.HasHessian) {
		return ErrKernelLoadFailure
	}
	g := e.ConstraintGroups[group]
	g.Structure = structure
	g.ConstraintKernel = kernel
	return nil
}

// AssignObjectiveGroupAutodiffStructure mirrors the constraint variant for
// objective groups.
func (e *Evaluator) AssignObjectiveGroupAutodiffStructure(group int, structure *autodiff.Structure, kernel *autodiff.ObjectiveKernel) error {
	if group < 0 || group >= len(e.ObjectiveGroups) {
		return ErrGroupIndexOutOfRange
	}
	if kernel == nil && (structure.HasJacobian || structure.HasHessian) {
		return ErrKernelLoadFailure
	}
	g := e.ObjectiveGroups[group]
	g.Structure = structure
	g.ObjectiveKernel = kernel
	return nil
}
