package cipher

// TraceOp names one recorded cipher transform.
type TraceOp string

const (
	TraceInitial     TraceOp = "initial"
	TraceSubBytes    TraceOp = "subBytes"
	TraceShiftRows   TraceOp = "shiftRows"
	TraceMixColumns  TraceOp = "mixColumns"
	TraceAddRoundKey TraceOp = "addRoundKey"
)

// TraceLength is the fixed number of steps a block encryption emits:
// the initial snapshot, the round-0 key addition, four transforms for
// each of rounds 1-9, and three for the final round.
const TraceLength = 1 + 1 + 9*4 + 3

// TraceStep records the state after one transform. State is an
// independent snapshot, never an alias of the working state.
// RoundKey is set only on addRoundKey steps.
type TraceStep struct {
	Round    int
	Op       TraceOp
	State    Block
	RoundKey *RoundKey
}

// EncryptBlockWithTrace encrypts one block while recording every
// intermediate state in order. The trace always holds exactly
// TraceLength steps.
func (e *Engine) EncryptBlockWithTrace(block Block) (Block, []TraceStep) {
	steps := make([]TraceStep, 0, TraceLength)
	state := block

	steps = append(steps, TraceStep{Round: 0, Op: TraceInitial, State: state})

	addRoundKey(&state, e.keys[0])
	steps = append(steps, e.keyStep(0, state))

	for round := 1; round < Rounds; round++ {
		e.subBytes(&state)
		steps = append(steps, TraceStep{Round: round, Op: TraceSubBytes, State: state})
		shiftRows(&state)
		steps = append(steps, TraceStep{Round: round, Op: TraceShiftRows, State: state})
		mixColumns(&state)
		steps = append(steps, TraceStep{Round: round, Op: TraceMixColumns, State: state})
		addRoundKey(&state, e.keys[round])
		steps = append(steps, e.keyStep(round, state))
	}

	e.subBytes(&state)
	steps = append(steps, TraceStep{Round: Rounds, Op: TraceSubBytes, State: state})
	shiftRows(&state)
	steps = append(steps, TraceStep{Round: Rounds, Op: TraceShiftRows, State: state})
	addRoundKey(&state, e.keys[Rounds])
	steps = append(steps, e.keyStep(Rounds, state))

	return state, steps
}

func (e *Engine) keyStep(round int, state Block) TraceStep {
	rk := e.keys[round]
	return TraceStep{Round: round, Op: TraceAddRoundKey, State: state, RoundKey: &rk}
}
