// Package gf implements arithmetic over the finite field GF(2^8) as
// used by the AES family of ciphers.
//
// All operations reduce modulo the Rijndael polynomial
// x^8 + x^4 + x^3 + x + 1 (0x11B). The package provides carry-less
// multiplication, the xtime doubling primitive, fixed-constant
// multiplication for the MixColumns coefficients, and the
// multiplicative inverse.
//
// # Inverse Table Verification
//
// The multiplicative inverse is served from a table precomputed at
// package initialization. A second, independent code path computes
// inverses by exponentiation (x^254 via repeated multiplication).
// [VerifyInverseTable] cross-checks the two paths and asserts the
// field identity multiply(x, inverse(x)) == 1 for every nonzero x,
// so a corrupted table is detected rather than trusted silently.
package gf
