package sbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/sboxkit/affine"
)

// referenceMatrix is the default design of the toolkit.
var referenceMatrix = affine.Matrix{0x57, 0xAB, 0xD5, 0xEA, 0x75, 0xBA, 0x5D, 0xAE}

func TestGenerateReferenceEntries(t *testing.T) {
	s := Generate(referenceMatrix, 0x63)
	assert.Equal(t, byte(0x63), s[0])
	assert.Equal(t, byte(0x34), s[1])
	assert.Equal(t, byte(0xA5), s[2])
}

func TestGenerateStandardAES(t *testing.T) {
	s := AES()

	// First row of the published AES S-box.
	firstRow := []byte{
		0x63, 0x7C, 0x77, 0x7B, 0xF2, 0x6B, 0x6F, 0xC5,
		0x30, 0x01, 0x67, 0x2B, 0xFE, 0xD7, 0xAB, 0x76,
	}
	for i, want := range firstRow {
		assert.Equal(t, want, s[i], "AES S-box entry %d", i)
	}

	// Spot checks deeper in the table.
	assert.Equal(t, byte(0xED), s[0x53])
	assert.Equal(t, byte(0x16), s[0xFF])
	assert.Equal(t, byte(0xCA), s[0x10])
}

func TestAESBoxProperties(t *testing.T) {
	s := AES()
	assert.True(t, s.IsBijective())
	assert.True(t, s.IsBalanced())
	assert.Empty(t, s.FixedPoints(), "the AES S-box has no fixed points")
	assert.Empty(t, s.OppositeFixedPoints(), "the AES S-box has no opposite fixed points")
}

func TestInverseRoundtrip(t *testing.T) {
	matrices := []affine.Matrix{referenceMatrix, AESMatrix}
	for i := 0; i < 5; i++ {
		m, err := affine.RandomInvertible()
		require.NoError(t, err)
		matrices = append(matrices, m)
	}

	for _, m := range matrices {
		for _, c := range []byte{0x00, 0x63, 0xFF} {
			s := Generate(m, c)
			require.True(t, s.IsBijective(), "invertible matrix must give a bijective table")

			inv, err := GenerateInverse(s)
			require.NoError(t, err)
			for x := 0; x < Size; x++ {
				if inv[s[x]] != byte(x) {
					t.Fatalf("inverse[s[0x%02X]] = 0x%02X", x, inv[s[x]])
				}
			}
		}
	}
}

func TestGenerateInverseRejectsCollisions(t *testing.T) {
	// A singular matrix collapses inputs onto each other.
	singular := affine.Matrix{0x01, 0x01, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}
	require.False(t, singular.IsInvertible())

	s := Generate(singular, 0x63)
	assert.False(t, s.IsBijective())

	_, err := GenerateInverse(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotBijective)
}

func TestIsBalanced(t *testing.T) {
	// Any permutation is balanced; the identity is the simplest.
	var identity SBox
	for i := range identity {
		identity[i] = byte(i)
	}
	assert.True(t, identity.IsBalanced())

	// A constant table is maximally unbalanced.
	var constant SBox
	assert.False(t, constant.IsBalanced())
}

func TestFixedPointDiagnostics(t *testing.T) {
	var identity SBox
	for i := range identity {
		identity[i] = byte(i)
	}
	assert.Len(t, identity.FixedPoints(), 256)
	assert.Empty(t, identity.OppositeFixedPoints())

	var complement SBox
	for i := range complement {
		complement[i] = ^byte(i)
	}
	assert.Empty(t, complement.FixedPoints())
	assert.Len(t, complement.OppositeFixedPoints(), 256)
}

func TestCompare(t *testing.T) {
	a := AES()
	assert.Equal(t, 0, Compare(a, a))

	b := a
	b[0] ^= 0xFF
	b[255] ^= 0x01
	assert.Equal(t, 2, Compare(a, b))

	ref := Generate(referenceMatrix, 0x63)
	assert.Greater(t, Compare(a, ref), 200, "distinct designs should disagree almost everywhere")
}

func TestBitWeight(t *testing.T) {
	s := AES()
	for bit := 0; bit < 8; bit++ {
		assert.Equal(t, Size/2, s.BitWeight(bit), "permutations are balanced in every bit")
	}

	var allSet SBox
	for i := range allSet {
		allSet[i] = 0xFF
	}
	for bit := 0; bit < 8; bit++ {
		assert.Equal(t, Size, allSet.BitWeight(bit))
	}
}

func TestConfigHexRoundtrip(t *testing.T) {
	c := Config{Matrix: referenceMatrix, Constant: 0x63}
	text := c.EncodeHex()
	assert.Len(t, text, configHexLen)

	back, err := DecodeConfigHex(text)
	require.NoError(t, err)
	assert.Equal(t, c, back)

	_, err = DecodeConfigHex("zz")
	assert.Error(t, err)
	_, err = DecodeConfigHex("0011")
	assert.Error(t, err)
}

func TestSBoxHexRoundtrip(t *testing.T) {
	s := AES()
	text := s.EncodeHex()
	assert.Len(t, text, 512)

	back, err := DecodeSBoxHex(text)
	require.NoError(t, err)
	assert.Equal(t, s, back)

	_, err = DecodeSBoxHex("0063")
	assert.Error(t, err)
}

func TestConfigBuild(t *testing.T) {
	good := Config{Matrix: AESMatrix, Constant: AESConstant}
	s, err := good.Build()
	require.NoError(t, err)
	assert.Equal(t, AES(), s)

	bad := Config{Matrix: affine.Matrix{0x01, 0x01, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}, Constant: 0x63}
	_, err = bad.Build()
	assert.ErrorIs(t, err, affine.ErrSingularMatrix)
}

func TestConfigFingerprint(t *testing.T) {
	a := Config{Matrix: AESMatrix, Constant: AESConstant}
	b := Config{Matrix: referenceMatrix, Constant: 0x63}

	assert.Equal(t, a.Fingerprint(), a.Fingerprint(), "fingerprint must be deterministic")
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
