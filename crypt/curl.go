package crypt

const (
	NUMBER_OF_ROUNDSP27 = 27
	NUMBER_OF_ROUNDSP81 = 81
	HASH_LENGTH         = 243
	STATE_LENGTH        = 3 * HASH_LENGTH

	// Cursor step of the permutation. Applied STATE_LENGTH times it brings
	// the cursor back to 0.
	CURSOR_STEP = 364
)

// Trit is a ternary digit in {-1, 0, 1}.
type Trit int8

type Trits []Trit

// Indexed by a + 3*b + 4.
var TRUTH_TABLE = [9]Trit{1, 0, -1, 1, -1, 0, -1, 1, 0}

// Mode toggles compatibility with the legacy ccurl binding.
type Mode uint8

const (
	// CompatFixedRounds makes Transform always run NUMBER_OF_ROUNDSP81 rounds,
	// whatever round count the Curl was created with.
	CompatFixedRounds Mode = 1 << iota
	// CompatSqueezeWindow makes Squeeze write every chunk to the first
	// HASH_LENGTH output positions, leaving the rest of the output zero.
	CompatSqueezeWindow

	CompatLegacy = CompatFixedRounds | CompatSqueezeWindow
)

// Curl is the ternary sponge. It is not safe for concurrent use, every
// goroutine hashing in parallel needs its own instance.
type Curl struct {
	state  [STATE_LENGTH]Trit
	rounds int
	mode   Mode
}

// NewCurl returns a zeroed sponge. A round count <= 0 selects the default of
// NUMBER_OF_ROUNDSP81.
func NewCurl(rounds int, modes ...Mode) *Curl {
	if rounds <= 0 {
		rounds = NUMBER_OF_ROUNDSP81
	}
	curl := &Curl{rounds: rounds}
	for _, m := range modes {
		curl.mode |= m
	}
	return curl
}

func Truth(a, b Trit) Trit {
	return TRUTH_TABLE[a+3*b+4]
}

func (curl *Curl) Rounds() int {
	return curl.rounds
}

func (curl *Curl) Mode() Mode {
	return curl.mode
}

// Clone returns an independent copy of the sponge.
func (curl *Curl) Clone() *Curl {
	clone := *curl
	return &clone
}

// State returns a copy of the full state.
func (curl *Curl) State() [STATE_LENGTH]Trit {
	return curl.state
}

// Rate returns a copy of the rate region.
func (curl *Curl) Rate() Trits {
	rate := make(Trits, HASH_LENGTH)
	copy(rate, curl.state[:HASH_LENGTH])
	return rate
}

func (curl *Curl) Reset() {
	curl.state = [STATE_LENGTH]Trit{}
}

// Absorb overwrites the rate with consecutive chunks of trits, transforming
// after each one. Rate positions past a short final chunk keep their value.
// An empty input still transforms once.
func (curl *Curl) Absorb(trits Trits) {
	offset, length := 0, len(trits)
	for {
		limit := length
		if limit > HASH_LENGTH {
			limit = HASH_LENGTH
		}
		copy(curl.state[:limit], trits[offset:offset+limit])
		curl.Transform()
		offset += HASH_LENGTH
		length -= HASH_LENGTH
		if length <= 0 {
			break
		}
	}
}

const maxChunks = int(^uint(0)>>1) / HASH_LENGTH

// SqueezeLength rounds length up to a multiple of HASH_LENGTH, at least one
// chunk. It saturates at the largest multiple of HASH_LENGTH an int holds.
func SqueezeLength(length int) int {
	chunks := length / HASH_LENGTH
	if length%HASH_LENGTH > 0 && chunks < maxChunks {
		chunks++
	}
	if chunks < 1 {
		chunks = 1
	}
	return chunks * HASH_LENGTH
}

// Squeeze returns SqueezeLength(length) trits.
func (curl *Curl) Squeeze(length int) Trits {
	resp := make(Trits, SqueezeLength(length))
	for offset := 0; offset < len(resp); offset += HASH_LENGTH {
		if curl.mode&CompatSqueezeWindow != 0 {
			copy(resp[:HASH_LENGTH], curl.state[:HASH_LENGTH])
		} else {
			copy(resp[offset:offset+HASH_LENGTH], curl.state[:HASH_LENGTH])
		}
		curl.Transform()
	}
	return resp
}

func (curl *Curl) Transform() {
	rounds := curl.rounds
	if curl.mode&CompatFixedRounds != 0 {
		rounds = NUMBER_OF_ROUNDSP81
	}
	for round := 0; round < rounds; round++ {
		transformRound(&curl.state)
	}
}

// Every output of a round is computed from the state before the round.
func transformRound(state *[STATE_LENGTH]Trit) {
	scratchpad := *state
	index := 0
	for i := 0; i < STATE_LENGTH; i++ {
		prev := index
		index += CURSOR_STEP
		if index >= STATE_LENGTH {
			index -= STATE_LENGTH
		}
		state[i] = Truth(scratchpad[prev], scratchpad[index])
	}
}

// HashCurl absorbs trits into a fresh sponge and squeezes length trits.
func HashCurl(trits Trits, length int, rounds int, modes ...Mode) Trits {
	curl := NewCurl(rounds, modes...)
	curl.Absorb(trits)
	return curl.Squeeze(length)
}

func RunHashCurl(trits Trits) Trits {
	return HashCurl(trits, HASH_LENGTH, NUMBER_OF_ROUNDSP81)
}
