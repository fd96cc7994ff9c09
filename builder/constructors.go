package builder

import "github.com/lithiumgraph/nlcore/core"

// Affine merges f into g (dropping terms at or below the configured zero
// tolerance) and appends the resulting handle to the running term list.
func Affine(f core.ScalarAffineFunction) Constructor {
	return func(g *core.ExpressionGraph, cfg *builderConfig) error {
		filtered := f
		filtered.Variables, filtered.Coefficients = filterAffineTerms(f.Variables, f.Coefficients, cfg.zeroTol)
		cfg.terms = append(cfg.terms, g.MergeScalarAffineFunction(filtered))
		return nil
	}
}

// Quadratic merges f into g (dropping linear and quadratic terms at or
// below the configured zero tolerance) and appends the resulting handle.
func Quadratic(f core.ScalarQuadraticFunction) Constructor {
	return func(g *core.ExpressionGraph, cfg *builderConfig) error {
		filtered := f
		filtered.Variables, filtered.Coefficients = filterAffineTerms(f.Variables, f.Coefficients, cfg.zeroTol)
		filtered.QuadraticRows, filtered.QuadraticCols, filtered.QuadraticCoefs = filterQuadraticTerms(f, cfg.zeroTol)
		cfg.terms = append(cfg.terms, g.MergeScalarQuadraticFunction(filtered))
		return nil
	}
}

// Nonlinear runs build against g directly and appends its returned handle
// to the running term list, letting a caller mix arbitrary nonlinear
// pieces in with the affine/quadratic ones assembled by the same
// BuildGraph call.
func Nonlinear(build func(g *core.ExpressionGraph) core.ExpressionHandle) Constructor {
	return func(g *core.ExpressionGraph, cfg *builderConfig) error {
		cfg.terms = append(cfg.terms, build(g))
		return nil
	}
}

func filterAffineTerms(vars []core.EntityId, coefs []float64, tol float64) ([]core.EntityId, []float64) {
	if tol <= 0 {
		return vars, coefs
	}
	keptVars := make([]core.EntityId, 0, len(vars))
	keptCoefs := make([]float64, 0, len(coefs))
	for i, c := range coefs {
		if absFloat(c) <= tol {
			continue
		}
		keptVars = append(keptVars, vars[i])
		keptCoefs = append(keptCoefs, c)
	}
	return keptVars, keptCoefs
}

func filterQuadraticTerms(f core.ScalarQuadraticFunction, tol float64) (rows, cols []core.EntityId, coefs []float64) {
	if tol <= 0 {
		return f.QuadraticRows, f.QuadraticCols, f.QuadraticCoefs
	}
	rows = make([]core.EntityId, 0, len(f.QuadraticRows))
	cols = make([]core.EntityId, 0, len(f.QuadraticCols))
	coefs = make([]float64, 0, len(f.QuadraticCoefs))
	for i, c := range f.QuadraticCoefs {
		if absFloat(c) <= tol {
			continue
		}
		rows = append(rows, f.QuadraticRows[i])
		cols = append(cols, f.QuadraticCols[i])
		coefs = append(coefs, c)
	}
	return rows, cols, coefs
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
