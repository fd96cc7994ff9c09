// Package model composes the linear (C4), quadratic (C5), and nonlinear
// group (C6) evaluators behind a single NLP driver surface: a variable/
// constraint/objective construction API plus the five solver callbacks
// (EvalF, EvalG, EvalGradF, EvalJacG, EvalH).
//
// Model plays the role lvlath/tsp/solve.go plays for its teacher: a
// top-level orchestrator that owns no numerical logic of its own, only
// the wiring that stitches independently testable subsystems into one
// public entry point.
package model
