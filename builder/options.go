package builder

// Option customizes the builderConfig resolved at the start of BuildGraph,
// before any Constructor runs.
type Option func(*builderConfig)

// WithZeroCoefficientTolerance drops affine and quadratic terms whose
// coefficient magnitude is at or below tol, instead of merging them into
// the graph as a structural zero-valued node. A tol of 0 (the default)
// disables filtering: every term is merged regardless of magnitude.
func WithZeroCoefficientTolerance(tol float64) Option {
	return func(cfg *builderConfig) { cfg.zeroTol = tol }
}
