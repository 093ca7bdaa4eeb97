package sbox

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/opd-ai/sboxkit/affine"
)

// Config is a complete S-box design: the affine matrix plus the
// additive constant. It is the unit of exchange with front ends,
// serialized as hex text.
type Config struct {
	Matrix   affine.Matrix
	Constant byte
}

// configHexLen is eight matrix rows plus one constant byte, two hex
// characters each.
const configHexLen = 18

// Build validates the matrix and generates the S-box. It fails with
// the underlying singularity error when the matrix has no inverse,
// since the resulting table could not be decrypted against.
func (c Config) Build() (SBox, error) {
	if _, err := c.Matrix.Invert(); err != nil {
		return SBox{}, fmt.Errorf("building S-box: %w", err)
	}
	return Generate(c.Matrix, c.Constant), nil
}

// EncodeHex renders the config as 18 hex characters: the eight matrix
// rows followed by the constant.
func (c Config) EncodeHex() string {
	raw := make([]byte, 0, 9)
	raw = append(raw, c.Matrix[:]...)
	raw = append(raw, c.Constant)
	return hex.EncodeToString(raw)
}

// DecodeConfigHex parses the hex text form produced by EncodeHex.
func DecodeConfigHex(s string) (Config, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Config{}, fmt.Errorf("decoding config hex: %w", err)
	}
	if len(raw) != 9 {
		return Config{}, fmt.Errorf("config hex is %d bytes, want 9", len(raw))
	}
	var c Config
	copy(c.Matrix[:], raw[:8])
	c.Constant = raw[8]
	return c, nil
}

// Fingerprint returns the SHA3-256 digest of the design: matrix rows,
// constant, then the full generated table. Two configs share a
// fingerprint only if they describe the same substitution.
func (c Config) Fingerprint() [32]byte {
	s := Generate(c.Matrix, c.Constant)
	raw := make([]byte, 0, 9+Size)
	raw = append(raw, c.Matrix[:]...)
	raw = append(raw, c.Constant)
	raw = append(raw, s[:]...)
	return sha3.Sum256(raw)
}

// EncodeHex renders the table as 512 hex characters.
func (s SBox) EncodeHex() string {
	return hex.EncodeToString(s[:])
}

// DecodeSBoxHex parses a 512-character hex table.
func DecodeSBoxHex(text string) (SBox, error) {
	raw, err := hex.DecodeString(text)
	if err != nil {
		return SBox{}, fmt.Errorf("decoding S-box hex: %w", err)
	}
	if len(raw) != Size {
		return SBox{}, fmt.Errorf("S-box hex is %d bytes, want %d", len(raw), Size)
	}
	var s SBox
	copy(s[:], raw)
	return s, nil
}
