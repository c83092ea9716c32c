package generators

import (
	"github.com/fernandosanchezjr/goscrambler/generators/window"
	"github.com/fernandosanchezjr/goscrambler/utils"
)

const (
	// GoldSequenceLength is the width of both shift registers.
	GoldSequenceLength = 31
	// Nc is the number of outputs skipped before the sequence starts.
	Nc = 1600
)

// Taps lists register offsets, relative to the oldest bit, whose sum
// modulo 2 becomes the next bit.
type Taps []int

var (
	X1Taps = Taps{3, 0}
	X2Taps = Taps{3, 2, 1, 0}
)

// Register is a 31 bit shift register addressed circularly: index points
// at the oldest bit, which the next Advance overwrites.
type Register struct {
	state  [GoldSequenceLength]byte
	index  int
	taps   Taps
	memory *window.Window
}

func newRegister(taps Taps, keep int) *Register {
	r := &Register{taps: taps}
	if keep > 0 {
		r.memory = window.NewWindow(keep)
	}
	return r
}

// NewX1 returns the first m-sequence register, seeded with bit 0 set.
// A positive keep enables a memory window of that capacity.
func NewX1(keep int) *Register {
	r := newRegister(X1Taps, keep)
	r.state[0] = 1
	return r
}

// NewX2 returns the second m-sequence register, seeded from the low 31
// bits of cInit.
func NewX2(cInit uint32, keep int) *Register {
	r := newRegister(X2Taps, keep)
	for n := 0; n < GoldSequenceLength; n++ {
		r.state[n] = byte(cInit>>uint(n)) & 0x1
	}
	return r
}

// Advance writes the feedback bit over the oldest position, moves the index
// forward and returns the bit now at the index. The k-th call returns x(k).
func (r *Register) Advance() byte {
	var sum byte
	for _, tap := range r.taps {
		sum += r.state[(r.index+tap)%GoldSequenceLength]
	}
	r.state[r.index] = sum % 2
	r.index = (r.index + 1) % GoldSequenceLength
	bit := r.state[r.index]
	if r.memory != nil {
		r.memory.Push(bit)
	}
	return bit
}

// State returns the register contents, oldest bit first.
func (r *Register) State() utils.Bits {
	ret := make(utils.Bits, GoldSequenceLength)
	for i := range ret {
		ret[i] = r.state[(r.index+i)%GoldSequenceLength]
	}
	return ret
}

// Memory is nil unless the register was created with a positive keep.
func (r *Register) Memory() *window.Window {
	return r.memory
}
