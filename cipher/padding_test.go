package cipher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadLengths(t *testing.T) {
	for n := 0; n <= 48; n++ {
		data := bytes.Repeat([]byte{0xAA}, n)
		padded := Pad(data)

		assert.Equal(t, 0, len(padded)%BlockSize)
		assert.Greater(t, len(padded), n, "padding always adds at least one byte")

		padLen := int(padded[len(padded)-1])
		assert.GreaterOrEqual(t, padLen, 1)
		assert.LessOrEqual(t, padLen, BlockSize)
		assert.Equal(t, n+padLen, len(padded))
	}
}

func TestPadFullBlockInput(t *testing.T) {
	data := make([]byte, BlockSize)
	padded := Pad(data)
	require.Len(t, padded, 2*BlockSize)
	for i := BlockSize; i < len(padded); i++ {
		assert.Equal(t, byte(BlockSize), padded[i])
	}
}

func TestUnpadRoundtrip(t *testing.T) {
	for n := 0; n <= 48; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i + 1)
		}
		out, err := Unpad(Pad(data))
		require.NoError(t, err)
		assert.Equal(t, data, out)
	}
}

func TestUnpadEmpty(t *testing.T) {
	_, err := Unpad(nil)
	var padErr *PaddingError
	require.ErrorAs(t, err, &padErr)
	assert.Equal(t, PadCheckEmpty, padErr.Check)
}

func TestUnpadRange(t *testing.T) {
	// Marker 0 is never produced by Pad.
	data := append(bytes.Repeat([]byte{0x01}, 15), 0x00)
	_, err := Unpad(data)
	var padErr *PaddingError
	require.ErrorAs(t, err, &padErr)
	assert.Equal(t, PadCheckRange, padErr.Check)
	assert.Equal(t, byte(0x00), padErr.Value)

	// Marker above the block size.
	data = append(bytes.Repeat([]byte{0x01}, 15), 0x11)
	_, err = Unpad(data)
	require.ErrorAs(t, err, &padErr)
	assert.Equal(t, PadCheckRange, padErr.Check)
}

func TestUnpadBounds(t *testing.T) {
	// Marker exceeds the data length.
	data := []byte{0x08, 0x08, 0x08, 0x08}
	_, err := Unpad(data)
	var padErr *PaddingError
	require.ErrorAs(t, err, &padErr)
	assert.Equal(t, PadCheckBounds, padErr.Check)
}

func TestUnpadByteMismatch(t *testing.T) {
	data := Pad([]byte("abc"))
	data[len(data)-5] ^= 0xFF
	_, err := Unpad(data)
	var padErr *PaddingError
	require.ErrorAs(t, err, &padErr)
	assert.Equal(t, PadCheckByte, padErr.Check)
	assert.Equal(t, len(data)-5, padErr.Index)
}

func TestPaddingErrorMessage(t *testing.T) {
	err := &PaddingError{Check: PadCheckByte, Index: 12, Value: 0x07}
	assert.Contains(t, err.Error(), "byte 12")
	assert.Contains(t, err.Error(), "0x07")

	err = &PaddingError{Check: PadCheckEmpty, Index: -1}
	assert.Contains(t, err.Error(), PadCheckEmpty)
}
