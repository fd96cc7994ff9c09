package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by the driver (spec §7).
// ErrGroupIndexOutOfRange and ErrKernelLoadFailure mirror sentinels of the
// same shape raised deeper in the stack (package nlgroup). For a constraint
// group, Structure translates the package-local sentinel into its
// model-level counterpart and wraps it in a *ModelError carrying the
// offending group; an objective-group error is returned unwrapped, as
// package nlgroup's own sentinel.
var (
	// ErrNoSolution indicates a primal/dual getter was called before a
	// successful solve. Package model itself never solves anything (that
	// is out of scope, §1); this sentinel exists for a host embedding this
	// driver behind its own solve loop to reuse.
	ErrNoSolution = errors.New("model: no solution available")

	// ErrStructureNotReady indicates an evaluation method was called
	// before Structure().
	ErrStructureNotReady = errors.New("model: structure phase has not run")

	// ErrGroupIndexOutOfRange mirrors nlgroup.ErrGroupIndexOutOfRange at
	// the driver boundary.
	ErrGroupIndexOutOfRange = errors.New("model: group index out of range")

	// ErrIncompatibleObjectiveDegree indicates a second SetXObjective call
	// was made after an objective was already installed.
	ErrIncompatibleObjectiveDegree = errors.New("model: objective already set at an incompatible degree")

	// ErrKernelLoadFailure mirrors nlgroup.ErrKernelLoadFailure at the
	// driver boundary.
	ErrKernelLoadFailure = errors.New("model: kernel failed to load")
)

// ModelError wraps a sentinel error kind with the offending constraint
// context, per spec §7's "single error message with the offending context
// (constraint kind + index) and a stable error kind identifier".
type ModelError struct {
	Kind  error
	CKind ConstraintKind
	Index int
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model: %s constraint %d: %v", e.CKind, e.Index, e.Kind)
}

func (e *ModelError) Unwrap() error { return e.Kind }

func newModelError(kind error, ckind ConstraintKind, index int) *ModelError {
	return &ModelError{Kind: kind, CKind: ckind, Index: index}
}
