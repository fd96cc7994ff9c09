package core

// VariableIndex, ScalarAffineFunction and ScalarQuadraticFunction are the
// minimal carrier types the evaluator subset of this module accepts as
// input. Full linear/quadratic modeling sugar (builder types, arithmetic
// operator overloading) is explicitly out of scope (spec Non-goals); these
// structs exist only so that a flat affine or quadratic function object can
// be merged into an ExpressionGraph as an Add-of-Mul tree, unifying the
// linear/quadratic modeling surface with the nonlinear one.
type VariableIndex struct {
	ID EntityId
}

// ScalarAffineFunction is Constant + sum(Coefficients[i] * Variables[i]).
type ScalarAffineFunction struct {
	Variables    []EntityId
	Coefficients []float64
	Constant     float64
}

// ScalarQuadraticFunction is Constant + linear part + sum of quadratic
// terms QuadraticCoefs[i] * QuadraticRows[i] * QuadraticCols[i]
// (QuadraticRows[i] == QuadraticCols[i] for a diagonal/square term).
type ScalarQuadraticFunction struct {
	QuadraticRows  []EntityId
	QuadraticCols  []EntityId
	QuadraticCoefs []float64

	Variables    []EntityId
	Coefficients []float64
	Constant     float64
}

// coefficientTerm builds coef*x using the shortcuts from spec 4.1:
// coef == 1 -> x, coef == -1 -> Neg(x), otherwise Mul(Constant(coef), x).
func coefficientTerm(g *ExpressionGraph, coef float64, x ExpressionHandle) ExpressionHandle {
	switch coef {
	case 1:
		return x
	case -1:
		return g.AddUnary(Neg, x)
	default:
		return g.AddNary(Mul, []ExpressionHandle{g.AddConstant(coef), x})
	}
}

// MergeVariableIndex appends or reuses the graph's handle for v.
func (g *ExpressionGraph) MergeVariableIndex(v VariableIndex) ExpressionHandle {
	return g.AddVariable(v.ID)
}

// MergeScalarAffineFunction folds f into g as an Add-of-Mul tree and
// returns the resulting handle.
func (g *ExpressionGraph) MergeScalarAffineFunction(f ScalarAffineFunction) ExpressionHandle {
	terms := make([]ExpressionHandle, 0, len(f.Variables)+1)
	for i, id := range f.Variables {
		x := g.AddVariable(id)
		terms = append(terms, coefficientTerm(g, f.Coefficients[i], x))
	}
	if f.Constant != 0 || len(terms) == 0 {
		terms = append(terms, g.AddConstant(f.Constant))
	}
	return g.AddNary(Add, terms)
}

// MergeScalarQuadraticFunction folds f into g as an Add-of-Mul tree: each
// quadratic term becomes coef*(Mul row col), the linear part reuses
// MergeScalarAffineFunction's coefficient shortcuts, and everything is
// summed by one top-level Add.
func (g *ExpressionGraph) MergeScalarQuadraticFunction(f ScalarQuadraticFunction) ExpressionHandle {
	terms := make([]ExpressionHandle, 0, len(f.QuadraticRows)+len(f.Variables)+1)
	for i, rowID := range f.QuadraticRows {
		colID := f.QuadraticCols[i]
		row := g.AddVariable(rowID)
		col := g.AddVariable(colID)
		product := g.AddNary(Mul, []ExpressionHandle{row, col})
		terms = append(terms, coefficientTerm(g, f.QuadraticCoefs[i], product))
	}
	for i, id := range f.Variables {
		x := g.AddVariable(id)
		terms = append(terms, coefficientTerm(g, f.Coefficients[i], x))
	}
	if f.Constant != 0 || len(terms) == 0 {
		terms = append(terms, g.AddConstant(f.Constant))
	}
	return g.AddNary(Add, terms)
}
