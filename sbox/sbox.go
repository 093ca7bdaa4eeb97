package sbox

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/sboxkit/affine"
	"github.com/opd-ai/sboxkit/gf"
)

// Size is the number of entries in a substitution box.
const Size = 256

// SBox is a 256-entry byte substitution table.
type SBox [Size]byte

// ErrNotBijective reports that a table is not a permutation of
// {0..255} and therefore has no well-defined inverse.
var ErrNotBijective = errors.New("sbox: table is not a permutation of 0..255")

// AESMatrix is the affine matrix of the standard AES S-box, with
// coefficient K[i][j] at bit j of row byte i.
var AESMatrix = affine.Matrix{0xF1, 0xE3, 0xC7, 0x8F, 0x1F, 0x3E, 0x7C, 0xF8}

// AESConstant is the affine constant of the standard AES S-box.
const AESConstant = 0x63

var (
	aesOnce sync.Once
	aesBox  SBox
)

// AES returns the standard AES substitution box, generated once from
// AESMatrix and AESConstant.
func AES() SBox {
	aesOnce.Do(func() {
		aesBox = Generate(AESMatrix, AESConstant)
	})
	return aesBox
}

// Generate builds a substitution box: for every x,
// sbox[x] = affine(gfInverse(x), matrix, constant). The GF(2^8)
// inverse already maps 0 to 0, so no special case is needed.
//
// The result is a permutation exactly when the matrix is invertible;
// Generate does not check this. Callers that need a bijective table
// must validate the matrix first or call [SBox.IsBijective].
func Generate(m affine.Matrix, constant byte) SBox {
	var s SBox
	for x := 0; x < Size; x++ {
		s[x] = affine.Apply(gf.Inverse(byte(x)), m, constant)
	}
	logrus.WithFields(logrus.Fields{
		"function": "Generate",
		"package":  "sbox",
		"constant": fmt.Sprintf("0x%02X", constant),
	}).Debug("Generated substitution box")
	return s
}

// GenerateInverse builds the inverse table inv[s[x]] = x. It rejects
// non-bijective input: silently overwriting collided slots would
// leave some entries undefined and break decryption in ways that are
// hard to diagnose downstream.
func GenerateInverse(s SBox) (SBox, error) {
	if !s.IsBijective() {
		logrus.WithFields(logrus.Fields{
			"function": "GenerateInverse",
			"package":  "sbox",
		}).Warn("Refusing to invert non-bijective table")
		return SBox{}, ErrNotBijective
	}
	var inv SBox
	for x := 0; x < Size; x++ {
		inv[s[x]] = byte(x)
	}
	return inv, nil
}

// IsBijective reports whether the table is a permutation of {0..255}.
func (s SBox) IsBijective() bool {
	var seen [Size]bool
	for _, v := range s {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// IsBalanced reports whether every output bit position is set in
// exactly half of the entries. All bijective tables are balanced, but
// not vice versa.
func (s SBox) IsBalanced() bool {
	for bit := 0; bit < 8; bit++ {
		count := 0
		for _, v := range s {
			count += int(v>>bit) & 1
		}
		if count != Size/2 {
			return false
		}
	}
	return true
}

// FixedPoints returns every input x with s[x] == x.
func (s SBox) FixedPoints() []byte {
	var points []byte
	for x := 0; x < Size; x++ {
		if s[x] == byte(x) {
			points = append(points, byte(x))
		}
	}
	return points
}

// OppositeFixedPoints returns every input x with s[x] equal to the
// bitwise complement of x.
func (s SBox) OppositeFixedPoints() []byte {
	var points []byte
	for x := 0; x < Size; x++ {
		if s[x] == ^byte(x) {
			points = append(points, byte(x))
		}
	}
	return points
}

// Compare counts the entries at which two tables differ.
func Compare(a, b SBox) int {
	diff := 0
	for i := 0; i < Size; i++ {
		if a[i] != b[i] {
			diff++
		}
	}
	return diff
}

// BitWeight returns the number of entries with the given output bit
// set, for balance diagnostics.
func (s SBox) BitWeight(bit int) int {
	count := 0
	for _, v := range s {
		count += bits.OnesCount8(v & (1 << bit))
	}
	return count
}
