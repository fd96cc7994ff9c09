package nlgroup

import (
	"github.com/lithiumgraph/nlcore/autodiff"
	"github.com/lithiumgraph/nlcore/core"
)

// GraphInstance is one use-site of an expression-graph shape: the
// concrete variables bound to the trace's independent inputs, in trace
// order, and the concrete values of its dynamic parameters, in the order
// Trace's representative program expects them.
type GraphInstance struct {
	Variables []core.EntityId
	Constants []float64
}

// membership records one instance's position within its group, per spec
// §4.6.2 ("record (group, rank) in constraint_group_memberships[idx]").
type membership struct {
	group int
	rank  int
	set   bool
}

// Group is a maximal set of instances sharing a structural hash. A single
// Group value is reused for both constraint and objective aggregation;
// which of ConstraintKernel/ObjectiveKernel is populated (and, downstream,
// GradientIndices for objective groups) depends on which list the group
// lives in.
type Group struct {
	InstanceIndices []int

	Structure        *autodiff.Structure
	ConstraintKernel *autodiff.ConstraintKernel
	ObjectiveKernel  *autodiff.ObjectiveKernel

	// GradientIndices has length n_instances * local_jacobian_nnz
	// (objective groups only): the global sparse-gradient column for each
	// local gradient entry of each instance, in instance then local order.
	GradientIndices []int

	// HessianIndices has length n_instances * local_hessian_nnz: the
	// global Hessian slot for each local Hessian entry of each instance.
	HessianIndices []int
}

// hashEntry is one row of the constraint- or objective-hash log.
type hashEntry struct {
	hash  uint64
	index int
}
