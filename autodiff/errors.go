package autodiff

import "errors"

var (
	// ErrComparisonUsedAsValue indicates a compare Binary node was reached
	// by the tracer outside a Ternary condition position.
	ErrComparisonUsedAsValue = errors.New("autodiff: comparison operator used as a value")

	// ErrUnboundVariable indicates the trace encountered a Variable node
	// whose EntityId does not appear in the instance's variable list.
	ErrUnboundVariable = errors.New("autodiff: variable not bound in instance variable list")

	// ErrUnknownOperator mirrors core.ErrUnknownOperator for operator tags
	// the tracer or evaluator does not recognize.
	ErrUnknownOperator = errors.New("autodiff: unknown operator")

	// ErrDimensionMismatch indicates a caller passed a primal or parameter
	// vector whose length disagrees with the Program's Nx/Np.
	ErrDimensionMismatch = errors.New("autodiff: input length does not match program dimensions")
)
