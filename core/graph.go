package core

// ExpressionGraph owns seven append-only per-kind node arrays plus the
// constraint- and objective-output lists and the variable/parameter dedup
// maps. It is built once, then handed to package autodiff for tracing.
//
// The append-only discipline is what makes the graph acyclic by
// construction: every handle stored in a later node was returned by an
// earlier Add* call, so there is never a cycle to detect and no
// ownership/lifetime bookkeeping beyond "this slice never shrinks".
type ExpressionGraph struct {
	constants  []ConstantNode
	variables  []VariableNode
	parameters []ParameterNode
	unaries    []UnaryNode
	binaries   []BinaryNode
	ternaries  []TernaryNode
	naries     []NaryNode

	varIndex   map[EntityId]ExpressionHandle
	paramIndex map[EntityId]ExpressionHandle

	// ConstraintOutputs and ObjectiveOutputs are the output lists a single
	// graph may feed. A graph can carry both if it is shared between a
	// constraint and an objective use-site.
	ConstraintOutputs []ExpressionHandle
	ObjectiveOutputs  []ExpressionHandle
}

// NewExpressionGraph returns an empty graph ready for construction.
func NewExpressionGraph() *ExpressionGraph {
	return &ExpressionGraph{
		varIndex:   make(map[EntityId]ExpressionHandle),
		paramIndex: make(map[EntityId]ExpressionHandle),
	}
}

// NVariables returns the number of distinct variables registered so far.
func (g *ExpressionGraph) NVariables() int { return len(g.variables) }

// NParameters returns the number of distinct parameters registered so far.
func (g *ExpressionGraph) NParameters() int { return len(g.parameters) }

// AddVariable registers id as an independent variable, returning the
// existing handle if id was already registered (idempotent per id).
func (g *ExpressionGraph) AddVariable(id EntityId) ExpressionHandle {
	if h, ok := g.varIndex[id]; ok {
		return h
	}
	h := ExpressionHandle{Kind: KindVariable, Index: uint32(len(g.variables))}
	g.variables = append(g.variables, VariableNode{Ref: id})
	g.varIndex[id] = h
	return h
}

// AddConstant appends a new constant node. Constants are never deduped by
// value.
func (g *ExpressionGraph) AddConstant(value float64) ExpressionHandle {
	h := ExpressionHandle{Kind: KindConstant, Index: uint32(len(g.constants))}
	g.constants = append(g.constants, ConstantNode{Value: value})
	return h
}

// AddParameter registers id as a dynamic parameter, returning the existing
// handle if id was already registered.
func (g *ExpressionGraph) AddParameter(id EntityId) ExpressionHandle {
	if h, ok := g.paramIndex[id]; ok {
		return h
	}
	h := ExpressionHandle{Kind: KindParameter, Index: uint32(len(g.parameters))}
	g.parameters = append(g.parameters, ParameterNode{Ref: id})
	g.paramIndex[id] = h
	return h
}

// AddUnary appends a unary node over operand.
func (g *ExpressionGraph) AddUnary(op UnaryOperator, operand ExpressionHandle) ExpressionHandle {
	h := ExpressionHandle{Kind: KindUnary, Index: uint32(len(g.unaries))}
	g.unaries = append(g.unaries, UnaryNode{Op: op, Operand: operand})
	return h
}

// AddBinary appends a binary node over (left, right). Compare operators are
// accepted here unconditionally; it is AddTernary and the tracer that
// enforce where a compare node may legally be used.
func (g *ExpressionGraph) AddBinary(op BinaryOperator, left, right ExpressionHandle) ExpressionHandle {
	h := ExpressionHandle{Kind: KindBinary, Index: uint32(len(g.binaries))}
	g.binaries = append(g.binaries, BinaryNode{Op: op, Left: left, Right: right})
	return h
}

// AddTernary appends a conditional node. cond must reference a Binary node
// carrying a compare operator, else ErrInvalidComparisonExpression is
// returned and no node is appended.
func (g *ExpressionGraph) AddTernary(op TernaryOperator, cond, then, els ExpressionHandle) (ExpressionHandle, error) {
	if !g.IsCompareExpression(cond) {
		return ExpressionHandle{}, ErrInvalidComparisonExpression
	}
	h := ExpressionHandle{Kind: KindTernary, Index: uint32(len(g.ternaries))}
	g.ternaries = append(g.ternaries, TernaryNode{Op: op, Cond: cond, Then: then, Else: els})
	return h, nil
}

// AddNary appends an n-ary node over operands. An empty operand list is
// legal; the tracer folds it to the operator's identity element.
func (g *ExpressionGraph) AddNary(op NaryOperator, operands []ExpressionHandle) ExpressionHandle {
	h := ExpressionHandle{Kind: KindNary, Index: uint32(len(g.naries))}
	cp := make([]ExpressionHandle, len(operands))
	copy(cp, operands)
	g.naries = append(g.naries, NaryNode{Op: op, Operands: cp})
	return h
}

// AddRepeatNary appends an n-ary node with N copies of the same operand
// handle. This is a convenience for "the same sub-expression N times"
// without building an N-element slice at the call site.
func (g *ExpressionGraph) AddRepeatNary(op NaryOperator, operand ExpressionHandle, n int) ExpressionHandle {
	operands := make([]ExpressionHandle, n)
	for i := range operands {
		operands[i] = operand
	}
	return g.AddNary(op, operands)
}

// AppendNary grows an existing n-ary node's operand list in place. This is
// only permissible before the graph has been traced (package autodiff reads
// a snapshot of the operand slice at trace time).
func (g *ExpressionGraph) AppendNary(nary, operand ExpressionHandle) error {
	if nary.Kind != KindNary || int(nary.Index) >= len(g.naries) {
		return ErrNotNaryHandle
	}
	g.naries[nary.Index].Operands = append(g.naries[nary.Index].Operands, operand)
	return nil
}

// GetNaryOperator returns the operator of the Nary node referenced by h.
func (g *ExpressionGraph) GetNaryOperator(h ExpressionHandle) (NaryOperator, error) {
	if h.Kind != KindNary || int(h.Index) >= len(g.naries) {
		return 0, ErrNotNaryHandle
	}
	return g.naries[h.Index].Op, nil
}

// IsCompareExpression reports whether h references a Binary node whose
// operator is one of the six comparison operators.
func (g *ExpressionGraph) IsCompareExpression(h ExpressionHandle) bool {
	if h.Kind != KindBinary || int(h.Index) >= len(g.binaries) {
		return false
	}
	return g.binaries[h.Index].Op.IsCompare()
}

// AddConstraintOutput appends h to the graph's constraint output list.
func (g *ExpressionGraph) AddConstraintOutput(h ExpressionHandle) {
	g.ConstraintOutputs = append(g.ConstraintOutputs, h)
}

// AddObjectiveOutput appends h to the graph's objective output list.
func (g *ExpressionGraph) AddObjectiveOutput(h ExpressionHandle) {
	g.ObjectiveOutputs = append(g.ObjectiveOutputs, h)
}

// Node accessors used by package autodiff while tracing. They are cheap,
// bounds-checked-by-the-runtime slice reads; out-of-range indices are a
// programmer error (a handle that did not originate from this graph) and
// are allowed to panic, exactly like an out-of-bounds slice index anywhere
// else in Go.

func (g *ExpressionGraph) Constant(i uint32) ConstantNode   { return g.constants[i] }
func (g *ExpressionGraph) Variable(i uint32) VariableNode   { return g.variables[i] }
func (g *ExpressionGraph) Parameter(i uint32) ParameterNode { return g.parameters[i] }
func (g *ExpressionGraph) Unary(i uint32) UnaryNode         { return g.unaries[i] }
func (g *ExpressionGraph) Binary(i uint32) BinaryNode       { return g.binaries[i] }
func (g *ExpressionGraph) Ternary(i uint32) TernaryNode     { return g.ternaries[i] }
func (g *ExpressionGraph) Nary(i uint32) NaryNode           { return g.naries[i] }

// NConstants, NUnaries, NBinaries, NTernaries, NNaries report the current
// length of each per-kind array, mainly for hashing and bounds checks.
func (g *ExpressionGraph) NConstants() int { return len(g.constants) }
func (g *ExpressionGraph) NUnaries() int   { return len(g.unaries) }
func (g *ExpressionGraph) NBinaries() int  { return len(g.binaries) }
func (g *ExpressionGraph) NTernaries() int { return len(g.ternaries) }
func (g *ExpressionGraph) NNaries() int    { return len(g.naries) }
