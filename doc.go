// Package sboxkit is a byte-oriented cryptographic toolkit for
// designing and evaluating substitution boxes.
//
// It combines GF(2^8) finite-field arithmetic, generation of S-boxes
// from arbitrary 8x8 binary affine transformations, a 10-round
// AES-128 engine parameterized by the generated S-box, and a suite of
// strength metrics (nonlinearity, avalanche, bit independence,
// linear/differential approximation probability).
//
// # Getting Started
//
// Build a design from a matrix and constant, check it, and encrypt:
//
//	matrix := affine.Matrix{0x57, 0xAB, 0xD5, 0xEA, 0x75, 0xBA, 0x5D, 0xAE}
//	if !sboxkit.IsMatrixValid(matrix) {
//	    log.Fatal("matrix is singular, S-box would not be a permutation")
//	}
//
//	cc, err := sboxkit.NewCipherContext(matrix, 0x63, "my secret key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ciphertext := cc.Encrypt("attack at dawn")
//	plaintext, err := cc.Decrypt(ciphertext)
//
// A [CipherContext] freezes the matrix, constant, S-box and key
// together, so a later edit to the design cannot desynchronize
// encryption from decryption.
//
// Evaluate a design:
//
//	report, err := sboxkit.CalculateAllMetrics(context.Background(), cc.SBox)
//	fmt.Printf("NL=%d LAP=%.4f DAP=%.6f\n", report.NL, report.LAP, report.DAP)
//
// The message API uses PKCS7 padding and ECB chaining. ECB is an
// educational reference mode with a well-known structural leak; see
// the cipher package documentation.
//
// # Packages
//
//   - gf: GF(2^8) field arithmetic
//   - affine: 8x8 binary matrices and the affine map
//   - sbox: S-box generation, validation and hex exchange
//   - cipher: the parameterized AES-128 engine
//   - metrics: S-box strength measures
package sboxkit
