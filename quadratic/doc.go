// Package quadratic implements the row-compressed quadratic constraint
// and objective evaluator (spec component C5): each row is stored as
// three CSR segments (diagonal quadratic terms, off-diagonal quadratic
// terms, linear terms) plus an optional constant, with a per-row
// variable dedup built during AddRow that gives a stable sparse Jacobian
// layout, and a Hessian structure built on demand against a shared
// core.HessianIndexMap.
package quadratic
