// Package nlgroup is the nonlinear evaluator / group engine (spec
// component C6): it owns the per-use-site GraphInstance records, groups
// instances sharing a structural hash into a single AD program each
// (package autodiff supplies the program, sparsity structure, and
// compiled kernel per group), and dispatches the five evaluation
// operations a solver needs across every group and instance.
//
// A column index anywhere in this package (a GraphInstance's Variables
// entry, a kernel's varIdx argument) is the variable's core.EntityId
// reinterpreted as an int; package model is responsible for handing out
// EntityIds as a dense 0-based column numbering, so "EntityId as column
// index" is always valid here.
package nlgroup
