// Package autodiff turns one core.ExpressionGraph into a traced program
// (the AD trace builder, spec component C2) and, from that program, derives
// sparsity patterns plus evaluator kernels (the symbolic structure
// extractor, spec component C3).
//
// There is no JIT step here — the teacher's numeric packages (lvlath/matrix)
// are hand-rolled pure Go with no code generation either, and Go has no
// portable equivalent of the original C++ implementation's compiled
// function pointers. A Program is instead a small topologically-ordered
// instruction list interpreted by a forward-mode, second-order
// dual-number evaluator (dual.go); "compiling a kernel" (spec §4.6.3) means
// closing over a Program and a Structure once per group, not emitting
// machine code.
package autodiff
