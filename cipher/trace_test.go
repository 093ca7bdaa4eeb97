package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceShape(t *testing.T) {
	e := aesEngine(t, "2b7e151628aed2a6abf7158809cf4f3c")
	block := mustBlock(t, "3243f6a8885a308d313198a2e0370734")

	ct, steps := e.EncryptBlockWithTrace(block)
	require.Len(t, steps, TraceLength)

	// The trace is deterministic and its result matches the plain
	// encryption path.
	assert.Equal(t, e.EncryptBlock(block), ct)
	assert.Equal(t, ct, steps[len(steps)-1].State)

	assert.Equal(t, TraceInitial, steps[0].Op)
	assert.Equal(t, block, steps[0].State)
	assert.Nil(t, steps[0].RoundKey)

	assert.Equal(t, TraceAddRoundKey, steps[1].Op)
	assert.Equal(t, 0, steps[1].Round)
	require.NotNil(t, steps[1].RoundKey)
	assert.Equal(t, e.RoundKeys()[0], *steps[1].RoundKey)

	// Rounds 1-9: four steps each in fixed order.
	order := []TraceOp{TraceSubBytes, TraceShiftRows, TraceMixColumns, TraceAddRoundKey}
	for round := 1; round < Rounds; round++ {
		base := 2 + (round-1)*4
		for j, op := range order {
			assert.Equal(t, op, steps[base+j].Op, "round %d step %d", round, j)
			assert.Equal(t, round, steps[base+j].Round)
		}
	}

	// Final round: no MixColumns.
	final := steps[len(steps)-3:]
	assert.Equal(t, TraceSubBytes, final[0].Op)
	assert.Equal(t, TraceShiftRows, final[1].Op)
	assert.Equal(t, TraceAddRoundKey, final[2].Op)
	for _, s := range final {
		assert.Equal(t, Rounds, s.Round)
	}
}

// TestTraceReplay re-applies each recorded operation to the previous
// step's state and checks it reproduces the recorded state.
func TestTraceReplay(t *testing.T) {
	e := aesEngine(t, "000102030405060708090a0b0c0d0e0f")
	block := mustBlock(t, "00112233445566778899aabbccddeeff")
	_, steps := e.EncryptBlockWithTrace(block)

	for i := 1; i < len(steps); i++ {
		state := steps[i-1].State
		switch steps[i].Op {
		case TraceSubBytes:
			e.subBytes(&state)
		case TraceShiftRows:
			shiftRows(&state)
		case TraceMixColumns:
			mixColumns(&state)
		case TraceAddRoundKey:
			require.NotNil(t, steps[i].RoundKey)
			addRoundKey(&state, *steps[i].RoundKey)
		default:
			t.Fatalf("unexpected op %q at step %d", steps[i].Op, i)
		}
		assert.Equal(t, steps[i].State, state, "step %d (%s)", i, steps[i].Op)
	}
}

func TestTraceSnapshotsAreIndependent(t *testing.T) {
	e := aesEngine(t, "000102030405060708090a0b0c0d0e0f")
	block := mustBlock(t, "00112233445566778899aabbccddeeff")
	_, steps := e.EncryptBlockWithTrace(block)

	// Mutating one snapshot must not affect any other.
	saved := steps[5].State
	steps[4].State[0] ^= 0xFF
	if rk := steps[1].RoundKey; rk != nil {
		rk[0] ^= 0xFF
	}
	assert.Equal(t, saved, steps[5].State)
	assert.Equal(t, e.RoundKeys()[0], e.RoundKeys()[0])
}
