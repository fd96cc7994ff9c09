package model

import "github.com/lithiumgraph/nlcore/core"

// DefaultHessianSparsityType is Upper, matching core.DefaultHessianSparsityType.
const DefaultHessianSparsityType = core.DefaultHessianSparsityType

// DefaultZeroTolerance mirrors autodiff.DefaultZeroTolerance: the
// structure phase's own seed-point threshold for nonlinear sparsity.
const DefaultZeroTolerance = 1e-12

// Option mutates a Model's construction-time configuration.
type Option func(*options)

type options struct {
	triangle HessianSparsityType
	zeroTol  float64
}

func defaultOptions() options {
	return options{triangle: DefaultHessianSparsityType, zeroTol: DefaultZeroTolerance}
}

// WithHessianSparsityType picks which triangle of the symmetric Hessian
// the model reports and accumulates into.
func WithHessianSparsityType(t HessianSparsityType) Option {
	return func(o *options) { o.triangle = t }
}

// WithZeroTolerance overrides the magnitude below which a nonlinear
// group's seed-point derivative is treated as structurally zero.
func WithZeroTolerance(tol float64) Option {
	return func(o *options) { o.zeroTol = tol }
}
