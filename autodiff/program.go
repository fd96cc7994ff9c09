package autodiff

import "github.com/lithiumgraph/nlcore/core"

// instruction is one traced operation. args indexes earlier positions in
// the owning Program's instructions slice (never graph handles), so a
// Program can be walked and evaluated without touching the source graph
// again.
type instruction struct {
	kind core.NodeKind

	unaryOp   core.UnaryOperator
	binaryOp  core.BinaryOperator
	compareOp core.BinaryOperator // Ternary only, after the NotEqual->Equal swap
	naryOp    core.NaryOperator

	constant    float64 // Constant only
	variablePos int     // Variable only: position in the instance's variable list
	parameterPos int    // Parameter only: position in the instance's constants list

	args []int
}

// Program is the traced, topologically-ordered form of one representative
// instance's expression graph: every shared sub-expression (same handle
// reached from more than one place) appears exactly once, in the order its
// first use was discovered, which is the CSE the spec's design notes call
// for without a separate optimizer pass.
type Program struct {
	instructions []instruction
	outputs      []int

	Nx, Np, Ny   int
	HasParameter bool
}

// Trace walks outputs (ConstraintOutputs or ObjectiveOutputs of g) and
// returns the traced Program. variables gives the order in which the
// instance's variables are bound to the program's independent inputs;
// parameters are bound positionally by their order of registration in g
// itself (core.ExpressionGraph.AddParameter / Parameter), since the
// instance's own constants[] is defined in that same order by convention.
func Trace(g *core.ExpressionGraph, variables []core.EntityId, outputs []core.ExpressionHandle) (*Program, error) {
	varPos := make(map[core.EntityId]int, len(variables))
	for i, id := range variables {
		varPos[id] = i
	}

	t := &tracer{
		g:      g,
		varPos: varPos,
		memo:   make(map[core.ExpressionHandle]int),
	}

	p := &Program{
		Nx:           len(variables),
		Np:           g.NParameters(),
		Ny:           len(outputs),
		HasParameter: g.NParameters() > 0,
	}

	for _, h := range outputs {
		idx, err := t.trace(h)
		if err != nil {
			return nil, err
		}
		p.outputs = append(p.outputs, idx)
	}
	p.instructions = t.instructions
	return p, nil
}

type tracer struct {
	g            *core.ExpressionGraph
	varPos       map[core.EntityId]int
	memo         map[core.ExpressionHandle]int
	instructions []instruction
}

func (t *tracer) emit(ins instruction) int {
	t.instructions = append(t.instructions, ins)
	return len(t.instructions) - 1
}

func (t *tracer) trace(h core.ExpressionHandle) (int, error) {
	if idx, ok := t.memo[h]; ok {
		return idx, nil
	}
	idx, err := t.traceUncached(h)
	if err != nil {
		return 0, err
	}
	t.memo[h] = idx
	return idx, nil
}

func (t *tracer) traceUncached(h core.ExpressionHandle) (int, error) {
	switch h.Kind {
	case core.KindConstant:
		n := t.g.Constant(h.Index)
		return t.emit(instruction{kind: core.KindConstant, constant: n.Value}), nil

	case core.KindVariable:
		n := t.g.Variable(h.Index)
		pos, ok := t.varPos[n.Ref]
		if !ok {
			return 0, ErrUnboundVariable
		}
		return t.emit(instruction{kind: core.KindVariable, variablePos: pos}), nil

	case core.KindParameter:
		return t.emit(instruction{kind: core.KindParameter, parameterPos: int(h.Index)}), nil

	case core.KindUnary:
		n := t.g.Unary(h.Index)
		arg, err := t.trace(n.Operand)
		if err != nil {
			return 0, err
		}
		return t.emit(instruction{kind: core.KindUnary, unaryOp: n.Op, args: []int{arg}}), nil

	case core.KindBinary:
		n := t.g.Binary(h.Index)
		if n.Op.IsCompare() {
			return 0, ErrComparisonUsedAsValue
		}
		l, err := t.trace(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := t.trace(n.Right)
		if err != nil {
			return 0, err
		}
		return t.emit(instruction{kind: core.KindBinary, binaryOp: n.Op, args: []int{l, r}}), nil

	case core.KindTernary:
		n := t.g.Ternary(h.Index)
		cond := t.g.Binary(n.Cond.Index)
		l, err := t.trace(cond.Left)
		if err != nil {
			return 0, err
		}
		r, err := t.trace(cond.Right)
		if err != nil {
			return 0, err
		}
		thenIdx, err := t.trace(n.Then)
		if err != nil {
			return 0, err
		}
		elseIdx, err := t.trace(n.Else)
		if err != nil {
			return 0, err
		}
		// NotEqual is realized by swapping the then/else branches of an
		// Equal conditional, so the evaluator only ever has to compare
		// with one of the five remaining operators.
		compareOp := cond.Op
		if compareOp == core.NotEqual {
			compareOp = core.Equal
			thenIdx, elseIdx = elseIdx, thenIdx
		}
		return t.emit(instruction{
			kind:      core.KindTernary,
			compareOp: compareOp,
			args:      []int{l, r, thenIdx, elseIdx},
		}), nil

	case core.KindNary:
		n := t.g.Nary(h.Index)
		args := make([]int, len(n.Operands))
		for i, op := range n.Operands {
			idx, err := t.trace(op)
			if err != nil {
				return 0, err
			}
			args[i] = idx
		}
		return t.emit(instruction{kind: core.KindNary, naryOp: n.Op, args: args}), nil

	default:
		return 0, ErrUnknownOperator
	}
}
