package nlgroup

import "errors"

var (
	// ErrGroupIndexOutOfRange indicates an assign/lookup against a
	// nonexistent constraint or objective group index.
	ErrGroupIndexOutOfRange = errors.New("nlgroup: group index out of range")

	// ErrKernelLoadFailure indicates a group's compiled kernel is nil
	// while its structure reports has_jacobian or has_hessian.
	ErrKernelLoadFailure = errors.New("nlgroup: kernel is nil but structure requires it")

	// ErrStructureNotReady names the state of a group that has not been
	// assigned its autodiff structure/kernel. No function in this package
	// returns it: the evaluation methods skip such a group.
	ErrStructureNotReady = errors.New("nlgroup: group structure not assigned")

	// ErrInstanceIndexOutOfRange indicates FinalizeGraphInstance
	// referenced an instance slot that was never allocated by
	// AddGraphInstance. Representative lookups report a bad group index
	// with ErrGroupIndexOutOfRange instead.
	ErrInstanceIndexOutOfRange = errors.New("nlgroup: instance index out of range")

	// ErrDimensionMismatch names a caller-provided buffer whose length
	// does not match what the current structure requires. No function in
	// this package returns it: the evaluation methods do not check
	// buffer lengths.
	ErrDimensionMismatch = errors.New("nlgroup: buffer length does not match evaluator dimensions")
)
