// Package linear implements the row-compressed affine constraint
// evaluator (spec component C4): rows accumulate one ScalarAffineFunction
// at a time into CSR-style coefficient/column arrays, and the Jacobian of
// an affine row is simply its (constant) coefficient vector.
package linear
