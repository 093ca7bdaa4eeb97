package gf

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// reduction is the low byte of the Rijndael polynomial 0x11B; the x^8
// term is implicit in the shift-and-reduce loop.
const reduction = 0x1B

// inverseTable holds the multiplicative inverse of every field
// element, with inverseTable[0] = 0 by convention.
var inverseTable [256]byte

func init() {
	for x := 1; x < 256; x++ {
		inverseTable[x] = inverseByExponent(byte(x))
	}
}

// Mul multiplies two elements of GF(2^8) modulo 0x11B.
func Mul(a, b byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		if b&1 == 1 {
			result ^= a
		}
		highBit := a & 0x80
		a <<= 1
		if highBit != 0 {
			a ^= reduction
		}
		b >>= 1
	}
	return result
}

// Xtime multiplies a field element by 0x02.
func Xtime(a byte) byte {
	if a&0x80 != 0 {
		return (a << 1) ^ reduction
	}
	return a << 1
}

// MulConstant multiplies a by one of the fixed MixColumns constants
// {1, 2, 3, 9, 11, 13, 14} using xtime chains. Other constants fall
// back to the general multiply.
func MulConstant(a, c byte) byte {
	x2 := Xtime(a)
	x4 := Xtime(x2)
	x8 := Xtime(x4)
	switch c {
	case 0x01:
		return a
	case 0x02:
		return x2
	case 0x03:
		return x2 ^ a
	case 0x09:
		return x8 ^ a
	case 0x0B:
		return x8 ^ x2 ^ a
	case 0x0D:
		return x8 ^ x4 ^ a
	case 0x0E:
		return x8 ^ x4 ^ x2
	default:
		return Mul(a, c)
	}
}

// Inverse returns the multiplicative inverse of a field element from
// the precomputed table. Inverse(0) is 0 by convention: zero has no
// true inverse, and the AES S-box construction maps it through as-is.
func Inverse(a byte) byte {
	return inverseTable[a]
}

// inverseByExponent computes the multiplicative inverse as a^254 by
// repeated multiplication. Since the multiplicative group of GF(2^8)
// has order 255, a^254 = a^-1 for every nonzero a; 0^254 = 0 keeps
// the zero convention.
func inverseByExponent(a byte) byte {
	if a == 0 {
		return 0
	}
	result := byte(1)
	for i := 0; i < 254; i++ {
		result = Mul(result, a)
	}
	return result
}

// VerifyInverseTable asserts that the precomputed inverse table agrees
// with the exponentiation path and that multiply(x, inverse(x)) == 1
// for every nonzero x. It returns the first discrepancy found.
func VerifyInverseTable() error {
	logrus.WithFields(logrus.Fields{
		"function": "VerifyInverseTable",
		"package":  "gf",
	}).Debug("Cross-checking inverse table against exponentiation")

	if inverseTable[0] != 0 {
		return fmt.Errorf("inverse table entry 0 is 0x%02X, want 0x00", inverseTable[0])
	}
	for x := 1; x < 256; x++ {
		b := byte(x)
		if got, want := inverseTable[b], inverseByExponent(b); got != want {
			return fmt.Errorf("inverse table entry 0x%02X is 0x%02X, exponentiation gives 0x%02X", b, got, want)
		}
		if p := Mul(b, inverseTable[b]); p != 1 {
			return fmt.Errorf("multiply(0x%02X, inverse(0x%02X)) = 0x%02X, want 0x01", b, b, p)
		}
	}
	return nil
}
