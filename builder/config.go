package builder

import "github.com/lithiumgraph/nlcore/core"

// DefaultZeroCoefficientTolerance is the magnitude at or below which an
// affine or quadratic term's coefficient is dropped entirely, rather than
// merged as a structural Mul(Constant(0), x) node. Zero by default: no
// term is dropped unless a caller opts in via WithZeroCoefficientTolerance.
const DefaultZeroCoefficientTolerance = 0.0

// builderConfig is the resolved, per-BuildGraph-call configuration every
// Constructor receives. terms accumulates each constructor's contributed
// handle, in call order; BuildGraph sums them once all constructors have run.
type builderConfig struct {
	zeroTol float64
	terms   []core.ExpressionHandle
}

func newBuilderConfig(opts ...Option) *builderConfig {
	cfg := &builderConfig{zeroTol: DefaultZeroCoefficientTolerance}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
