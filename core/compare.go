package core

import "math"

// UnpackComparisonExpression rewrites a top-level comparison (a Binary node
// whose operator is one of <=, >=, ==) into a canonical (realExpr, lb, ub)
// triple suitable for a bounded-constraint representation.
//
//   - If one side is a Constant, realExpr is the other side and the bound
//     is filled directly from the constant and the operator's direction.
//   - Otherwise a fresh Binary(Sub, left, right) node is appended to g and
//     the bound is (-inf, 0], [0, inf), or [0, 0].
//
// Returns ErrInvalidComparisonExpression if expr does not reference a
// Binary node, or references one whose operator is not <=, >=, or ==.
func UnpackComparisonExpression(g *ExpressionGraph, expr ExpressionHandle) (realExpr ExpressionHandle, lb, ub float64, err error) {
	if expr.Kind != KindBinary || int(expr.Index) >= len(g.binaries) {
		return ExpressionHandle{}, 0, 0, ErrInvalidComparisonExpression
	}
	node := g.binaries[expr.Index]
	left, right := node.Left, node.Right

	isConst := func(h ExpressionHandle) (float64, bool) {
		if h.Kind == KindConstant {
			return g.constants[h.Index].Value, true
		}
		return 0, false
	}

	switch node.Op {
	case LessEqual:
		if c, ok := isConst(right); ok {
			return left, math.Inf(-1), c, nil
		}
		if c, ok := isConst(left); ok {
			return right, c, math.Inf(1), nil
		}
		return g.AddBinary(Sub, left, right), math.Inf(-1), 0, nil
	case GreaterEqual:
		if c, ok := isConst(left); ok {
			return right, math.Inf(-1), c, nil
		}
		if c, ok := isConst(right); ok {
			return left, c, math.Inf(1), nil
		}
		return g.AddBinary(Sub, left, right), 0, math.Inf(1), nil
	case Equal:
		if c, ok := isConst(right); ok {
			return left, c, c, nil
		}
		if c, ok := isConst(left); ok {
			return right, c, c, nil
		}
		return g.AddBinary(Sub, left, right), 0, 0, nil
	default:
		return ExpressionHandle{}, 0, 0, ErrInvalidComparisonExpression
	}
}
