// Package cipher implements a 10-round AES-128 block cipher engine
// parameterized by an arbitrary substitution box.
//
// The engine follows FIPS-197 exactly in its key schedule, SubBytes,
// ShiftRows, MixColumns and AddRoundKey transforms, except that the
// substitution box is supplied by the caller instead of fixed. The S-box
// participates in key expansion, so it is part of the cipher's
// identity: the same raw key bytes produce a different round key
// schedule under a different S-box.
//
// Multi-block messages use PKCS7 padding and ECB chaining. ECB
// encrypts every block independently with no initialization vector,
// which leaks equal-block structure; that is the required reference
// behavior of this educational toolkit, documented here as a known
// weakness, and not a construction to reuse for real traffic.
//
// [Engine.EncryptBlockWithTrace] records every intermediate state of
// an encryption as an ordered list of 41 snapshots for visualization
// front ends.
package cipher
