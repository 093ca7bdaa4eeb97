package sboxkit

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/sboxkit/affine"
	"github.com/opd-ai/sboxkit/cipher"
	"github.com/opd-ai/sboxkit/metrics"
	"github.com/opd-ai/sboxkit/sbox"
)

// GenerateSBox builds the 256-entry substitution box for a matrix and
// constant. The result is a permutation only when the matrix is
// invertible; check IsMatrixValid first.
func GenerateSBox(matrix affine.Matrix, constant byte) sbox.SBox {
	return sbox.Generate(matrix, constant)
}

// GenerateInverseSBox builds the inverse table of a bijective S-box.
// Non-bijective input is rejected with sbox.ErrNotBijective.
func GenerateInverseSBox(s sbox.SBox) (sbox.SBox, error) {
	return sbox.GenerateInverse(s)
}

// IsMatrixValid reports whether the matrix has full GF(2) rank, the
// precondition for a bijective S-box.
func IsMatrixValid(matrix affine.Matrix) bool {
	return matrix.IsInvertible()
}

// InvertMatrix returns the GF(2) inverse of the matrix, or
// affine.ErrSingularMatrix when rank < 8.
func InvertMatrix(matrix affine.Matrix) (affine.Matrix, error) {
	return matrix.Invert()
}

// EncryptBlock encrypts one 16-byte block under the key and S-box.
func EncryptBlock(block cipher.Block, key [cipher.KeySize]byte, s sbox.SBox) (cipher.Block, error) {
	e, err := cipher.New(key, s)
	if err != nil {
		return cipher.Block{}, err
	}
	return e.EncryptBlock(block), nil
}

// DecryptBlock decrypts one 16-byte block under the key and S-box.
func DecryptBlock(block cipher.Block, key [cipher.KeySize]byte, s sbox.SBox) (cipher.Block, error) {
	e, err := cipher.New(key, s)
	if err != nil {
		return cipher.Block{}, err
	}
	return e.DecryptBlock(block), nil
}

// Encrypt encrypts UTF-8 text with PKCS7 padding in ECB mode. The key
// string must be 1 to 16 bytes; shorter keys are zero-padded to the
// cipher key size.
func Encrypt(plaintext, key string, s sbox.SBox) ([]byte, error) {
	e, err := engineForKey(key, s)
	if err != nil {
		return nil, err
	}
	return e.Encrypt([]byte(plaintext)), nil
}

// Decrypt reverses Encrypt. Padding violations surface as
// *cipher.PaddingError with the failed check and byte position.
func Decrypt(ciphertext []byte, key string, s sbox.SBox) (string, error) {
	e, err := engineForKey(key, s)
	if err != nil {
		return "", err
	}
	plaintext, err := e.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptWithSteps encrypts one block while recording all 41
// intermediate states, and returns the ciphertext, the ordered trace
// and the 11 expanded round keys for visualization.
func EncryptWithSteps(block cipher.Block, key [cipher.KeySize]byte, s sbox.SBox) (cipher.Block, []cipher.TraceStep, [cipher.NumRoundKeys]cipher.RoundKey, error) {
	e, err := cipher.New(key, s)
	if err != nil {
		return cipher.Block{}, nil, [cipher.NumRoundKeys]cipher.RoundKey{}, err
	}
	ct, steps := e.EncryptBlockWithTrace(block)
	return ct, steps, e.RoundKeys(), nil
}

// CalculateAllMetrics computes the full strength report for an S-box.
// Cancel the context to abandon a recomputation that no longer
// matches current state.
func CalculateAllMetrics(ctx context.Context, s sbox.SBox) (metrics.Report, error) {
	return metrics.CalculateAll(ctx, s)
}

// CipherContext freezes a complete cipher identity: matrix, constant,
// the S-box generated from them, and the key. Encrypting and
// decrypting through one context can never disagree about the S-box,
// even if the source design is edited afterwards.
type CipherContext struct {
	Matrix   affine.Matrix
	Constant byte
	SBox     sbox.SBox
	Key      [cipher.KeySize]byte

	engine *cipher.Engine
}

// NewCipherContext validates the matrix, generates the S-box and
// expands the key schedule once.
func NewCipherContext(matrix affine.Matrix, constant byte, key string) (*CipherContext, error) {
	if !matrix.IsInvertible() {
		return nil, fmt.Errorf("creating cipher context: %w", affine.ErrSingularMatrix)
	}
	keyBytes, err := padKey(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher context: %w", err)
	}

	s := sbox.Generate(matrix, constant)
	engine, err := cipher.New(keyBytes, s)
	if err != nil {
		return nil, fmt.Errorf("creating cipher context: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewCipherContext",
		"package":  "sboxkit",
		"constant": fmt.Sprintf("0x%02X", constant),
	}).Debug("Cipher context created")

	return &CipherContext{
		Matrix:   matrix,
		Constant: constant,
		SBox:     s,
		Key:      keyBytes,
		engine:   engine,
	}, nil
}

// Encrypt encrypts UTF-8 text under the frozen context.
func (c *CipherContext) Encrypt(plaintext string) []byte {
	return c.engine.Encrypt([]byte(plaintext))
}

// Decrypt reverses Encrypt under the frozen context.
func (c *CipherContext) Decrypt(ciphertext []byte) (string, error) {
	plaintext, err := c.engine.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptBlockWithTrace records the 41-step trace of one block under
// the frozen context.
func (c *CipherContext) EncryptBlockWithTrace(block cipher.Block) (cipher.Block, []cipher.TraceStep) {
	return c.engine.EncryptBlockWithTrace(block)
}

// RoundKeys exposes the expanded schedule for visualization.
func (c *CipherContext) RoundKeys() [cipher.NumRoundKeys]cipher.RoundKey {
	return c.engine.RoundKeys()
}

func engineForKey(key string, s sbox.SBox) (*cipher.Engine, error) {
	keyBytes, err := padKey(key)
	if err != nil {
		return nil, err
	}
	return cipher.New(keyBytes, s)
}

// padKey turns a 1..16-byte key string into a full cipher key,
// zero-padding on the right.
func padKey(key string) ([cipher.KeySize]byte, error) {
	var out [cipher.KeySize]byte
	if len(key) == 0 {
		return out, fmt.Errorf("key must not be empty")
	}
	if len(key) > cipher.KeySize {
		return out, fmt.Errorf("key is %d bytes, maximum is %d", len(key), cipher.KeySize)
	}
	copy(out[:], key)
	return out, nil
}
