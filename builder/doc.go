// Package builder assembles an ExpressionGraph from a deterministic
// sequence of Constructors, each merging one affine, quadratic, or
// nonlinear piece (spec §4.1's "convenience conversions") into a single
// running sum.
//
// Mirrors the role lvlath/builder plays for its teacher: BuildGraph is the
// one public orchestrator, Constructor the uniform unit of composition,
// and builderConfig the immutable (per call) resolved configuration behind
// a functional-options surface.
package builder
