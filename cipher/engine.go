package cipher

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/sboxkit/gf"
	"github.com/opd-ai/sboxkit/sbox"
)

const (
	// BlockSize is the cipher block size in bytes.
	BlockSize = 16
	// KeySize is the AES-128 key size in bytes.
	KeySize = 16
	// Rounds is the number of AES-128 rounds.
	Rounds = 10
	// NumRoundKeys is the length of the expanded key schedule.
	NumRoundKeys = Rounds + 1
)

// Block is one 16-byte cipher block. State bytes are column-major:
// byte i sits at row i%4, column i/4 of the 4x4 grid.
type Block [BlockSize]byte

// RoundKey is one state-shaped expanded key.
type RoundKey [BlockSize]byte

// rcon holds the AES round constants for key expansion.
var rcon = [Rounds]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1B, 0x36}

// Engine is an immutable AES-128 cipher bound to one key and one
// substitution box. All methods are safe for concurrent use.
type Engine struct {
	sbox sbox.SBox
	inv  sbox.SBox
	keys [NumRoundKeys]RoundKey
}

// New expands the key schedule for the given key and S-box. The S-box
// must be bijective, both for decryption and because a collapsing
// table would silently weaken the schedule.
func New(key [KeySize]byte, s sbox.SBox) (*Engine, error) {
	inv, err := sbox.GenerateInverse(s)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	e := &Engine{sbox: s, inv: inv}
	e.expandKey(key)

	logrus.WithFields(logrus.Fields{
		"function": "New",
		"package":  "cipher",
	}).Debug("Expanded key schedule")
	return e, nil
}

// expandKey derives the 44-word schedule. Every fourth word is
// rotated, substituted through the active S-box and mixed with the
// round constant before the running XOR.
func (e *Engine) expandKey(key [KeySize]byte) {
	var w [4 * NumRoundKeys][4]byte
	for i := 0; i < 4; i++ {
		copy(w[i][:], key[4*i:4*i+4])
	}
	for i := 4; i < len(w); i++ {
		temp := w[i-1]
		if i%4 == 0 {
			temp = [4]byte{temp[1], temp[2], temp[3], temp[0]}
			for j := range temp {
				temp[j] = e.sbox[temp[j]]
			}
			temp[0] ^= rcon[i/4-1]
		}
		for j := 0; j < 4; j++ {
			w[i][j] = w[i-4][j] ^ temp[j]
		}
	}
	for r := 0; r < NumRoundKeys; r++ {
		for j := 0; j < 4; j++ {
			copy(e.keys[r][4*j:4*j+4], w[4*r+j][:])
		}
	}
}

// RoundKeys returns a copy of the expanded key schedule.
func (e *Engine) RoundKeys() [NumRoundKeys]RoundKey {
	return e.keys
}

// SBox returns the substitution box the engine was built with.
func (e *Engine) SBox() sbox.SBox {
	return e.sbox
}

// EncryptBlock encrypts a single block.
func (e *Engine) EncryptBlock(block Block) Block {
	state := block
	addRoundKey(&state, e.keys[0])
	for round := 1; round < Rounds; round++ {
		e.subBytes(&state)
		shiftRows(&state)
		mixColumns(&state)
		addRoundKey(&state, e.keys[round])
	}
	e.subBytes(&state)
	shiftRows(&state)
	addRoundKey(&state, e.keys[Rounds])
	return state
}

// DecryptBlock decrypts a single block by applying the inverse
// transforms in reverse round order.
func (e *Engine) DecryptBlock(block Block) Block {
	state := block
	addRoundKey(&state, e.keys[Rounds])
	invShiftRows(&state)
	e.invSubBytes(&state)
	for round := Rounds - 1; round > 0; round-- {
		addRoundKey(&state, e.keys[round])
		invMixColumns(&state)
		invShiftRows(&state)
		e.invSubBytes(&state)
	}
	addRoundKey(&state, e.keys[0])
	return state
}

func (e *Engine) subBytes(state *Block) {
	for i := range state {
		state[i] = e.sbox[state[i]]
	}
}

func (e *Engine) invSubBytes(state *Block) {
	for i := range state {
		state[i] = e.inv[state[i]]
	}
}

// shiftRows rotates row r of the column-major state left by r
// positions. Row r occupies bytes r, r+4, r+8, r+12.
func shiftRows(state *Block) {
	state[1], state[5], state[9], state[13] = state[5], state[9], state[13], state[1]
	state[2], state[10] = state[10], state[2]
	state[6], state[14] = state[14], state[6]
	state[3], state[7], state[11], state[15] = state[15], state[3], state[7], state[11]
}

func invShiftRows(state *Block) {
	state[1], state[5], state[9], state[13] = state[13], state[1], state[5], state[9]
	state[2], state[10] = state[10], state[2]
	state[6], state[14] = state[14], state[6]
	state[3], state[7], state[11], state[15] = state[7], state[11], state[15], state[3]
}

// mixColumns multiplies every state column by the fixed MixColumns
// matrix over GF(2^8).
func mixColumns(state *Block) {
	for c := 0; c < BlockSize; c += 4 {
		s0, s1, s2, s3 := state[c], state[c+1], state[c+2], state[c+3]
		state[c] = gf.MulConstant(s0, 0x02) ^ gf.MulConstant(s1, 0x03) ^ s2 ^ s3
		state[c+1] = s0 ^ gf.MulConstant(s1, 0x02) ^ gf.MulConstant(s2, 0x03) ^ s3
		state[c+2] = s0 ^ s1 ^ gf.MulConstant(s2, 0x02) ^ gf.MulConstant(s3, 0x03)
		state[c+3] = gf.MulConstant(s0, 0x03) ^ s1 ^ s2 ^ gf.MulConstant(s3, 0x02)
	}
}

func invMixColumns(state *Block) {
	for c := 0; c < BlockSize; c += 4 {
		s0, s1, s2, s3 := state[c], state[c+1], state[c+2], state[c+3]
		state[c] = gf.MulConstant(s0, 0x0E) ^ gf.MulConstant(s1, 0x0B) ^ gf.MulConstant(s2, 0x0D) ^ gf.MulConstant(s3, 0x09)
		state[c+1] = gf.MulConstant(s0, 0x09) ^ gf.MulConstant(s1, 0x0E) ^ gf.MulConstant(s2, 0x0B) ^ gf.MulConstant(s3, 0x0D)
		state[c+2] = gf.MulConstant(s0, 0x0D) ^ gf.MulConstant(s1, 0x09) ^ gf.MulConstant(s2, 0x0E) ^ gf.MulConstant(s3, 0x0B)
		state[c+3] = gf.MulConstant(s0, 0x0B) ^ gf.MulConstant(s1, 0x0D) ^ gf.MulConstant(s2, 0x09) ^ gf.MulConstant(s3, 0x0E)
	}
}

func addRoundKey(state *Block, key RoundKey) {
	for i := range state {
		state[i] ^= key[i]
	}
}
