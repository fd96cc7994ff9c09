package model

import "github.com/lithiumgraph/nlcore/core"

// HessianSparsityType re-exports core.HessianSparsityType: a model picks
// one triangle convention at construction and passes it to
// autodiff.AnalyzeStructure and core.NewHessianIndexMap during Structure,
// never re-deciding it per call. quadratic.Evaluator and nlgroup.Evaluator
// take no triangle of their own; they intern through that HessianIndexMap.
type HessianSparsityType = core.HessianSparsityType

const (
	HessianUpper = core.HessianUpper
	HessianLower = core.HessianLower
)

// ObjectiveSense selects whether the driver's internal evaluators, which
// always compute an unsigned sum of contributions, are read directly
// (Minimize) or negated (Maximize).
type ObjectiveSense int

const (
	Minimize ObjectiveSense = iota
	Maximize
)

func (s ObjectiveSense) sign() float64 {
	if s == Maximize {
		return -1
	}
	return 1
}

// Sense is the comparison direction of a (sense, rhs)-style bound.
type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

// ConstraintKind tags which of the three evaluators owns a constraint row.
type ConstraintKind int

const (
	ConstraintLinear ConstraintKind = iota
	ConstraintQuadratic
	ConstraintNonlinear
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintLinear:
		return "Linear"
	case ConstraintQuadratic:
		return "Quadratic"
	case ConstraintNonlinear:
		return "Nonlinear"
	default:
		return "Unknown"
	}
}

// ConstraintIndex is the opaque handle returned by every AddXConstraint
// call: Kind identifies the owning evaluator, Index is the row's position
// within that evaluator's own add order.
type ConstraintIndex struct {
	Kind  ConstraintKind
	Index int
}

// Bounds is a closed interval [Lower, Upper], with an infinite endpoint
// meaning "unbounded on that side".
type Bounds struct {
	Lower float64
	Upper float64
}

// Variable is one decision variable's bounds and starting point. Its
// EntityId (the column it occupies) is assigned by AddVariable in
// insertion order and is never reused.
type Variable struct {
	LowerBound float64
	UpperBound float64
	Start      float64
	Name       string
}
