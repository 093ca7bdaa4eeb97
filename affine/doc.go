// Package affine implements 8x8 binary matrices over GF(2) and the
// affine transformation B(x) = (K·x) XOR c used to build substitution
// boxes.
//
// A [Matrix] is eight row bytes; the coefficient K[i][j] for output
// bit i and input bit j lives at bit j of row byte i (least
// significant bit first, matching the bit order of the byte being
// transformed). The package offers single-bit access, GF(2) rank and
// invertibility via Gaussian elimination, Gauss-Jordan inversion of
// the augmented [A | I] matrix, and forward/inverse application of
// the affine map.
//
// Only full-rank matrices yield bijective S-boxes; callers are
// expected to check [Matrix.IsInvertible] before building tables from
// user-supplied coefficients.
package affine
