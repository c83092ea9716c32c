// Package cinit maps physical layer parameters to the c_init seed of the
// Gold sequence generator.
package cinit

import (
	"errors"
	"fmt"
)

const (
	MaxScramblingId = 1<<16 - 1
	IdCount         = MaxScramblingId + 1
)

var (
	InvalidScramblingId = errors.New("invalid scrambling identifier")
	InvalidSSBIndex     = errors.New("invalid SS/PBCH block index")
)

// Slot locates an OFDM symbol inside a frame.
type Slot struct {
	SymbolsPerSlot int `yaml:"symbolsPerSlot"`
	SlotNumber     int `yaml:"slotNumber"`
	SymbolNumber   int `yaml:"symbolNumber"`
}

var DefaultSlot = Slot{SymbolsPerSlot: 14, SlotNumber: 4, SymbolNumber: 2}

func (s Slot) symbolIndex() int64 {
	return int64(s.SymbolsPerSlot)*int64(s.SlotNumber) + int64(s.SymbolNumber) + 1
}

func mod(v, m int64) int64 {
	return ((v % m) + m) % m
}

func CheckScramblingId(scramblingId int) error {
	if scramblingId < 0 || scramblingId > MaxScramblingId {
		return fmt.Errorf("%w: %d", InvalidScramblingId, scramblingId)
	}
	return nil
}

func pdcchDMRS(scramblingId int, slot Slot, modulus int64) int64 {
	id := int64(scramblingId)
	return mod((1<<17)*slot.symbolIndex()*(2*id+1)+2*id, modulus)
}

// Compute returns 2^17 * (symbolsPerSlot*slot + symbol + 1) * (2*id + 1) + 2*id
// reduced modulo 2^31.
func Compute(scramblingId int, slot Slot) (int64, error) {
	if err := CheckScramblingId(scramblingId); err != nil {
		return 0, err
	}
	return pdcchDMRS(scramblingId, slot, 1<<31), nil
}

// PDCCH is Compute with DefaultSlot.
func PDCCH(scramblingId int) (int64, error) {
	return Compute(scramblingId, DefaultSlot)
}

// PDCCHDMRS applies the same formula with the 2^32 reduction used when
// demodulating PDCCH reference signals.
func PDCCHDMRS(scramblingId int, slot Slot) (int64, error) {
	if err := CheckScramblingId(scramblingId); err != nil {
		return 0, err
	}
	return pdcchDMRS(scramblingId, slot, 1<<32), nil
}

// PBCHDMRS seeds the PBCH reference signal from the SS/PBCH block index,
// the half frame bit and the physical cell id.
func PBCHDMRS(ssbIndex, halfFrame, cellId int) (int64, error) {
	if ssbIndex < 0 || ssbIndex > 3 || halfFrame < 0 || halfFrame > 1 {
		return 0, fmt.Errorf("%w: i_ssb=%d n_hf=%d", InvalidSSBIndex, ssbIndex, halfFrame)
	}
	if cellId < 0 || cellId > 1007 {
		return 0, fmt.Errorf("%w: cell id %d", InvalidScramblingId, cellId)
	}
	i := int64(ssbIndex + halfFrame<<2)
	cell := int64(cellId)
	return (((i + 1) * (cell/4 + 1)) << 11) + ((i + 1) << 6) + cell%4, nil
}

// PDCCHScrambler seeds the PDCCH payload scrambler.
func PDCCHScrambler(rnti, scramblingId uint16) int64 {
	return int64((uint32(rnti)<<16 + uint32(scramblingId)) & 0x7fffffff)
}
