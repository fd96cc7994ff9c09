// Package core defines the expression graph: a typed, append-only DAG of
// algebraic operators whose leaves are decision variables, parameters, and
// constants.
//
// A graph is built once per expression "shape" (see package nlgroup for how
// many concrete instances of one shape are folded together) using the
// Add* construction methods; handles returned by those methods are valid
// only for the graph that produced them and are stable for the graph's
// entire lifetime, since the underlying per-kind arrays never shrink or
// reorder.
//
// Two handles are equal iff their (Kind, Index) pair is bitwise equal —
// this is also the basis of the structural hash used to detect
// structurally-identical graphs (see hash.go).
package core
