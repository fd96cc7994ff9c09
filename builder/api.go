package builder

import (
	"errors"
	"fmt"

	"github.com/lithiumgraph/nlcore/core"
)

// ErrConstructFailed indicates a nil Constructor was passed to BuildGraph.
var ErrConstructFailed = errors.New("builder: nil constructor")

// Constructor merges one affine, quadratic, or nonlinear piece into g and
// appends the resulting handle to cfg's running term list. A Constructor
// must not panic; it reports failure by returning an error.
type Constructor func(g *core.ExpressionGraph, cfg *builderConfig) error

// BuildGraph creates a new ExpressionGraph, resolves the builder
// configuration from bopts, and applies every Constructor in order,
// accumulating each one's contribution into a single running sum. The
// returned handle is the Add of every accumulated term (AddConstant(0) if
// no Constructor was given); the caller installs it as a constraint or
// objective output via model's AddSingleNLConstraint*/SetNonlinearObjective.
//
// Any Constructor error is wrapped with "BuildGraph: %w" and returned
// immediately; no partial cleanup is attempted.
func BuildGraph(bopts []Option, cons ...Constructor) (*core.ExpressionGraph, core.ExpressionHandle, error) {
	g := core.NewExpressionGraph()
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, core.ExpressionHandle{}, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, core.ExpressionHandle{}, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	if len(cfg.terms) == 0 {
		return g, g.AddConstant(0), nil
	}
	return g, g.AddNary(core.Add, cfg.terms), nil
}
