package affine

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/bits"

	"github.com/sirupsen/logrus"
)

// Matrix is an 8x8 binary matrix over GF(2). Row i is stored as a
// byte; bit j of that byte holds the coefficient K[i][j].
type Matrix [8]byte

// Identity is the 8x8 identity matrix.
var Identity = Matrix{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}

// ErrSingularMatrix reports that a matrix has GF(2) rank below 8 and
// therefore has no inverse.
var ErrSingularMatrix = errors.New("affine: matrix is singular over GF(2)")

// Bit returns the coefficient at the given row and column as 0 or 1.
func (m Matrix) Bit(row, col int) byte {
	return (m[row] >> col) & 1
}

// SetBit sets the coefficient at the given row and column to 0 or 1.
func (m *Matrix) SetBit(row, col int, v byte) {
	if v&1 == 1 {
		m[row] |= 1 << col
	} else {
		m[row] &^= 1 << col
	}
}

// ToggleBit flips the coefficient at the given row and column.
func (m *Matrix) ToggleBit(row, col int) {
	m[row] ^= 1 << col
}

// Rank computes the GF(2) rank of the matrix by Gaussian elimination
// on a working copy.
func (m Matrix) Rank() int {
	rank := 0
	for col := 0; col < 8; col++ {
		pivot := -1
		for row := rank; row < 8; row++ {
			if m.Bit(row, col) == 1 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			continue
		}
		m[rank], m[pivot] = m[pivot], m[rank]
		for row := 0; row < 8; row++ {
			if row != rank && m.Bit(row, col) == 1 {
				m[row] ^= m[rank]
			}
		}
		rank++
	}
	return rank
}

// IsInvertible reports whether the matrix has full row rank over
// GF(2), which is the condition for the derived S-box to be a
// permutation.
func (m Matrix) IsInvertible() bool {
	return m.Rank() == 8
}

// Invert returns the inverse matrix over GF(2), computed by
// Gauss-Jordan elimination on the augmented [A | I] matrix. It
// returns ErrSingularMatrix when no pivot exists for some column.
func (m Matrix) Invert() (Matrix, error) {
	// aug row: low byte is the working copy of A, high byte the
	// identity that accumulates the inverse.
	var aug [8]uint16
	for i := 0; i < 8; i++ {
		aug[i] = uint16(m[i]) | uint16(1)<<(8+i)
	}

	for col := 0; col < 8; col++ {
		pivot := -1
		for row := col; row < 8; row++ {
			if aug[row]>>col&1 == 1 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			logrus.WithFields(logrus.Fields{
				"function": "Invert",
				"package":  "affine",
				"column":   col,
			}).Warn("No pivot for column, matrix is singular")
			return Matrix{}, fmt.Errorf("no pivot for column %d: %w", col, ErrSingularMatrix)
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		for row := 0; row < 8; row++ {
			if row != col && aug[row]>>col&1 == 1 {
				aug[row] ^= aug[col]
			}
		}
	}

	var inv Matrix
	for i := 0; i < 8; i++ {
		inv[i] = byte(aug[i] >> 8)
	}
	return inv, nil
}

// Apply computes the affine transformation (K·x) XOR c. Output bit i
// is the GF(2) dot product of row i with the bits of x, so it reduces
// to the parity of m[i] AND x.
func Apply(x byte, m Matrix, c byte) byte {
	var out byte
	for i := 0; i < 8; i++ {
		out |= byte(bits.OnesCount8(m[i]&x)&1) << i
	}
	return out ^ c
}

// ApplyInverse undoes Apply: it strips the constant first, then
// applies the inverse matrix. inv must be the inverse of the matrix
// used in the forward direction.
func ApplyInverse(y byte, inv Matrix, c byte) byte {
	y ^= c
	var out byte
	for i := 0; i < 8; i++ {
		out |= byte(bits.OnesCount8(inv[i]&y)&1) << i
	}
	return out
}

// RandomInvertible draws random matrices from crypto/rand until one
// has full rank. The expected number of attempts is small: a uniform
// random 8x8 GF(2) matrix is invertible with probability ~0.29.
func RandomInvertible() (Matrix, error) {
	var m Matrix
	for attempt := 0; attempt < 100; attempt++ {
		if _, err := rand.Read(m[:]); err != nil {
			return Matrix{}, fmt.Errorf("reading random matrix rows: %w", err)
		}
		if m.IsInvertible() {
			logrus.WithFields(logrus.Fields{
				"function": "RandomInvertible",
				"package":  "affine",
				"attempts": attempt + 1,
			}).Debug("Generated random invertible matrix")
			return m, nil
		}
	}
	return Matrix{}, errors.New("affine: no invertible matrix after 100 attempts")
}
