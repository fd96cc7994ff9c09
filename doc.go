// Package nlcore is an optimization-modeling front end's nonlinear
// expression and derivative subsystem.
//
// 🚀 What is nlcore?
//
//	A single-threaded, allocation-disciplined library that brings together:
//
//	  • Expression graphs: typed, append-only DAGs of variables, parameters,
//	    constants and operators, with structural hashing for sub-expression
//	    sharing and instance grouping
//	  • An automatic-differentiation trace and sparsity extractor: forward
//	    dual-number evaluation, sparse Jacobian and triangular Hessian
//	    sparsity patterns, compiled per-group kernels
//	  • Sparse linear, quadratic and grouped-nonlinear evaluators, stitched
//	    into one callback surface (f, c, ∇f, ∇c, ∇²L) an NLP solver expects
//
// ✨ Why choose nlcore?
//
//   - Group-aware       — structurally identical expression instances share
//     one AD program and one compiled kernel, however many times they repeat
//   - Sparse by default — every Jacobian/Hessian entry is a (row, col) slot
//     interned once, never duplicated across groups
//   - Pure Go           — no cgo, no solver embedded; it only builds the
//     callback contract a solver is handed
//
// Under the hood, everything is organized under package subtrees:
//
//	core/      — the expression graph, structural hashing, comparison
//	             unpacking and affine/quadratic merge helpers
//	autodiff/  — the AD trace builder, dual-number kernels and the symbolic
//	             Jacobian/Hessian structure extractor
//	linear/    — sparse affine constraint/objective evaluation
//	quadratic/ — sparse quadratic constraint/objective evaluation, including
//	             symmetric Hessian accumulation
//	nlgroup/   — the group engine: instance lifecycle, hash-equivalence
//	             grouping, global index bookkeeping, evaluation dispatch
//	model/     — the driver that composes the above into one NLP callback
//	             surface
//	builder/   — constructors that fold affine/quadratic/nonlinear pieces
//	             into one expression graph
//
// Quick sketch of the data flow at solve time:
//
//	x ──► linear + quadratic + grouped-nonlinear evaluators ──► f(x), c(x), sparse ∇c, sparse ∇²L
//
// See SPEC_FULL.md and DESIGN.md in the repository root for the full
// component design and the grounding of each package.
package nlcore
