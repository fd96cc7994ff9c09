package model

import (
	"math"

	"github.com/lithiumgraph/nlcore/core"
	"github.com/lithiumgraph/nlcore/linear"
	"github.com/lithiumgraph/nlcore/nlgroup"
	"github.com/lithiumgraph/nlcore/quadratic"
)

// Model is the NLP driver (C7): it owns variable bookkeeping, the three
// constraint evaluators (linear, quadratic, nonlinear-grouped), the
// matching pair of single-row objective evaluators, and, once Structure
// has run, the global row/column/slot layout the five solver callbacks
// read and write through.
type Model struct {
	opts options

	variables []Variable

	linearConstraints    *linear.Evaluator
	quadraticConstraints *quadratic.Evaluator
	nl                   *nlgroup.Evaluator

	// Exactly one of these carries the objective; objectiveSet guards
	// against installing more than one.
	objectiveSet       bool
	objectiveSense     ObjectiveSense
	linearObjective    *linear.Evaluator // 0 or 1 row
	quadraticObjective *quadratic.Evaluator
	nlObjectiveActive  bool

	// extOrder[i] is the (kind, kind-local index) of the i-th constraint
	// added, in add order; nl_constraint_map_ext2int (spec §4.7 point 3)
	// is derived from it once Structure has run.
	extOrder  []ConstraintIndex
	extToInt  []int
	nlCInstOf []int // nlCInstOf[nonlinear-kind index] -> nl instance index

	// bounds[Kind][Index] is the caller-visible (lb, ub) pair for that
	// constraint; the evaluators themselves only ever see the residual
	// expression, so bound bookkeeping lives here.
	bounds [3][]Bounds

	structureReady bool
	s              *structureInfo
}

// NewModel returns an empty model ready for variable and constraint
// construction.
func NewModel(opts ...Option) *Model {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return &Model{
		opts:                 o,
		linearConstraints:    linear.NewEvaluator(),
		quadraticConstraints: quadratic.NewEvaluator(),
		nl:                   nlgroup.NewEvaluator(),
	}
}

// AddVariable registers a new decision variable and returns the EntityId
// (column) it occupies, assigned in insertion order starting at 0.
func (m *Model) AddVariable(lb, ub, start float64, name string) core.EntityId {
	id := core.EntityId(len(m.variables))
	m.variables = append(m.variables, Variable{LowerBound: lb, UpperBound: ub, Start: start, Name: name})
	return id
}

// NVariables reports how many variables have been registered.
func (m *Model) NVariables() int { return len(m.variables) }

// Variable returns the bounds/start/name registered for id.
func (m *Model) Variable(id core.EntityId) Variable { return m.variables[id] }

func (m *Model) recordExt(ci ConstraintIndex, lb, ub float64) ConstraintIndex {
	m.extOrder = append(m.extOrder, ci)
	m.bounds[ci.Kind] = append(m.bounds[ci.Kind], Bounds{Lower: lb, Upper: ub})
	return ci
}

// ConstraintBounds returns the (lb, ub) pair recorded for ci.
func (m *Model) ConstraintBounds(ci ConstraintIndex) Bounds { return m.bounds[ci.Kind][ci.Index] }

// AddLinearConstraint adds Coefficients . Variables + Constant (sense) rhs.
func (m *Model) AddLinearConstraint(f core.ScalarAffineFunction, sense Sense, rhs float64) ConstraintIndex {
	lb, ub := senseToBounds(sense, rhs)
	return m.addLinearConstraintInterval(f, lb, ub)
}

// AddLinearConstraintInterval adds lb <= Coefficients . Variables + Constant <= ub.
func (m *Model) AddLinearConstraintInterval(f core.ScalarAffineFunction, lb, ub float64) ConstraintIndex {
	return m.addLinearConstraintInterval(f, lb, ub)
}

func (m *Model) addLinearConstraintInterval(f core.ScalarAffineFunction, lb, ub float64) ConstraintIndex {
	idx := m.linearConstraints.AddRow(f)
	return m.recordExt(ConstraintIndex{Kind: ConstraintLinear, Index: idx}, lb, ub)
}

// AddQuadraticConstraint adds the quadratic residual f (sense) rhs.
func (m *Model) AddQuadraticConstraint(f core.ScalarQuadraticFunction, sense Sense, rhs float64) ConstraintIndex {
	lb, ub := senseToBounds(sense, rhs)
	return m.addQuadraticConstraintInterval(f, lb, ub)
}

// AddQuadraticConstraintInterval adds lb <= f <= ub for a quadratic residual.
func (m *Model) AddQuadraticConstraintInterval(f core.ScalarQuadraticFunction, lb, ub float64) ConstraintIndex {
	return m.addQuadraticConstraintInterval(f, lb, ub)
}

func (m *Model) addQuadraticConstraintInterval(f core.ScalarQuadraticFunction, lb, ub float64) ConstraintIndex {
	idx := m.quadraticConstraints.AddRow(f)
	return m.recordExt(ConstraintIndex{Kind: ConstraintQuadratic, Index: idx}, lb, ub)
}

// AddSingleNLConstraint unpacks a (sense, rhs) bound against expr by
// building the matching comparison node and routing it through
// core.UnpackComparisonExpression, so the "(sense, rhs)" and "comparison
// expression" variants of spec §6 share one code path.
func (m *Model) AddSingleNLConstraint(g *core.ExpressionGraph, variables []core.EntityId, constants []float64, expr core.ExpressionHandle, sense Sense, rhs float64) (ConstraintIndex, error) {
	op := senseToOperator(sense)
	cmp := g.AddBinary(op, expr, g.AddConstant(rhs))
	return m.AddSingleNLConstraintComparison(g, variables, constants, cmp)
}

// AddSingleNLConstraintInterval adds lb <= expr <= ub directly, without
// going through comparison unpacking (an interval is not itself a single
// comparison operator).
func (m *Model) AddSingleNLConstraintInterval(g *core.ExpressionGraph, variables []core.EntityId, constants []float64, expr core.ExpressionHandle, lb, ub float64) (ConstraintIndex, error) {
	g.AddConstraintOutput(expr)
	return m.finalizeNLConstraint(g, variables, constants, lb, ub)
}

// AddSingleNLConstraintComparison adds a constraint from an already-built
// comparison node (expr <=/>=/== Constant), unpacked via
// core.UnpackComparisonExpression per spec P7.
func (m *Model) AddSingleNLConstraintComparison(g *core.ExpressionGraph, variables []core.EntityId, constants []float64, cmp core.ExpressionHandle) (ConstraintIndex, error) {
	realExpr, lb, ub, err := core.UnpackComparisonExpression(g, cmp)
	if err != nil {
		return ConstraintIndex{}, err
	}
	g.AddConstraintOutput(realExpr)
	return m.finalizeNLConstraint(g, variables, constants, lb, ub)
}

func (m *Model) finalizeNLConstraint(g *core.ExpressionGraph, variables []core.EntityId, constants []float64, lb, ub float64) (ConstraintIndex, error) {
	inst := m.nl.AddGraphInstance()
	if err := m.nl.FinalizeGraphInstance(inst, g, variables, constants); err != nil {
		return ConstraintIndex{}, err
	}
	idx := len(m.nlCInstOf)
	m.nlCInstOf = append(m.nlCInstOf, inst)
	return m.recordExt(ConstraintIndex{Kind: ConstraintNonlinear, Index: idx}, lb, ub), nil
}

// SetLinearObjective installs Coefficients . Variables + Constant as the
// objective, signed per sense.
func (m *Model) SetLinearObjective(f core.ScalarAffineFunction, sense ObjectiveSense) error {
	if m.objectiveSet {
		return ErrIncompatibleObjectiveDegree
	}
	m.linearObjective = linear.NewEvaluator()
	m.linearObjective.AddRow(f)
	m.objectiveSense = sense
	m.objectiveSet = true
	return nil
}

// SetQuadraticObjective installs f as the objective, signed per sense.
func (m *Model) SetQuadraticObjective(f core.ScalarQuadraticFunction, sense ObjectiveSense) error {
	if m.objectiveSet {
		return ErrIncompatibleObjectiveDegree
	}
	m.quadraticObjective = quadratic.NewEvaluator()
	m.quadraticObjective.AddRow(f)
	m.objectiveSense = sense
	m.objectiveSet = true
	return nil
}

// SetNonlinearObjective installs expr (evaluated over g, with variables
// bound as in FinalizeGraphInstance) as the objective, signed per sense.
func (m *Model) SetNonlinearObjective(g *core.ExpressionGraph, variables []core.EntityId, constants []float64, expr core.ExpressionHandle, sense ObjectiveSense) error {
	if m.objectiveSet {
		return ErrIncompatibleObjectiveDegree
	}
	g.AddObjectiveOutput(expr)
	inst := m.nl.AddGraphInstance()
	if err := m.nl.FinalizeGraphInstance(inst, g, variables, constants); err != nil {
		return err
	}
	m.objectiveSense = sense
	m.objectiveSet = true
	m.nlObjectiveActive = true
	return nil
}

func senseToBounds(sense Sense, rhs float64) (lb, ub float64) {
	switch sense {
	case LessEqual:
		return math.Inf(-1), rhs
	case GreaterEqual:
		return rhs, math.Inf(1)
	default: // Equal
		return rhs, rhs
	}
}

func senseToOperator(sense Sense) core.BinaryOperator {
	switch sense {
	case LessEqual:
		return core.LessEqual
	case GreaterEqual:
		return core.GreaterEqual
	default:
		return core.Equal
	}
}
