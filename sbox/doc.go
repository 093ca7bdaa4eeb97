// Package sbox builds and validates 256-entry substitution boxes from
// an 8x8 affine transformation over GF(2) composed with the GF(2^8)
// multiplicative inverse.
//
// Generation follows the AES construction: each entry is
// affine(inverse(x)) XOR constant, where inverse(0) = 0. The source
// matrix determines whether the result is a permutation: a full-rank
// matrix always yields a bijective S-box, a singular one never does.
// [GenerateInverse] refuses non-bijective input outright rather than
// silently overwriting collided slots.
//
// The package also carries the standard AES design as a preset
// ([AESMatrix], [AES]), diagnostic predicates (fixed points, balance,
// table comparison), and a hex text form of a complete design
// ([Config]) with a SHA3-256 fingerprint for identifying exported
// configurations.
package sbox
