package cipher

import "fmt"

// Padding failure checks, in the order Unpad applies them.
const (
	PadCheckEmpty  = "empty input"
	PadCheckRange  = "pad length out of range"
	PadCheckBounds = "pad length exceeds data length"
	PadCheckByte   = "padding byte mismatch"
)

// PaddingError describes exactly which PKCS7 validation failed, so a
// caller can tell a wrong key or S-box from corrupted input.
type PaddingError struct {
	Check string
	// Index is the offending byte position in the data, or -1 when
	// the failure is not tied to a position.
	Index int
	Value byte
}

func (e *PaddingError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid padding: %s (value 0x%02X)", e.Check, e.Value)
	}
	return fmt.Sprintf("invalid padding: %s at byte %d (value 0x%02X)", e.Check, e.Index, e.Value)
}

// Pad appends PKCS7 padding up to the cipher block size. The pad
// length is always in [1, 16]: a message that already fills its last
// block gains a full block of padding.
func Pad(data []byte) []byte {
	padLen := BlockSize - len(data)%BlockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// Unpad strips and verifies PKCS7 padding. Every check failure is
// surfaced as a *PaddingError; padding is never silently truncated.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, &PaddingError{Check: PadCheckEmpty, Index: -1}
	}
	padLen := int(data[len(data)-1])
	if padLen < 1 || padLen > BlockSize {
		return nil, &PaddingError{Check: PadCheckRange, Index: len(data) - 1, Value: byte(padLen)}
	}
	if padLen > len(data) {
		return nil, &PaddingError{Check: PadCheckBounds, Index: len(data) - 1, Value: byte(padLen)}
	}
	for i := len(data) - padLen; i < len(data); i++ {
		if data[i] != byte(padLen) {
			return nil, &PaddingError{Check: PadCheckByte, Index: i, Value: data[i]}
		}
	}
	return data[:len(data)-padLen], nil
}
