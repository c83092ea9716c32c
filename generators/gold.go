package generators

import (
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/generators/window"
	"github.com/fernandosanchezjr/goscrambler/utils"
)

// Gold advances X1 and X2 in lock-step and emits their sum modulo 2. The
// warm-up is done by NewGold, so the first Next returns c(0).
type Gold struct {
	CInit    uint32
	x1       *Register
	x2       *Register
	memory   *window.Window
	produced int
}

// NewGold reduces cInit modulo 2^32. A positive keep bounds the memory of
// recent outputs.
func NewGold(cInit int64, keep int) *Gold {
	g := &Gold{
		CInit: uint32(cInit),
		x1:    NewX1(0),
		x2:    NewX2(uint32(cInit), 0),
	}
	if keep > 0 {
		g.memory = window.NewWindow(keep)
	}
	for n := 0; n < Nc-1; n++ {
		g.x1.Advance()
		g.x2.Advance()
	}
	return g
}

func (g *Gold) Next() byte {
	bit := (g.x1.Advance() + g.x2.Advance()) % 2
	g.produced++
	if g.memory != nil {
		g.memory.Push(bit)
	}
	return bit
}

// Produced counts outputs since the warm-up.
func (g *Gold) Produced() int {
	return g.produced
}

func (g *Gold) Memory() *window.Window {
	return g.memory
}

func checkLength(length int) error {
	if length < 0 {
		return fmt.Errorf("%w: %d", InvalidLength, length)
	}
	return nil
}

// Generate returns the first length bits of the Gold sequence for cInit.
func Generate(length int, cInit int64) (utils.Bits, error) {
	if err := checkLength(length); err != nil {
		return nil, err
	}
	g := NewGold(cInit, 0)
	ret := make(utils.Bits, length)
	for n := range ret {
		ret[n] = g.Next()
	}
	return ret, nil
}

// GeneratePacked is Generate without the one byte per bit expansion.
func GeneratePacked(length int, cInit int64) (utils.PackedBits, error) {
	if err := checkLength(length); err != nil {
		return utils.PackedBits{}, err
	}
	g := NewGold(cInit, 0)
	ret := utils.NewPackedBits(length)
	for n := 0; n < length; n++ {
		ret.Set(n, g.Next())
	}
	return ret, nil
}
