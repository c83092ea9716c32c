package api

import (
	url2 "github.com/fernandosanchezjr/goscrambler/backend/url"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/recovery"
	"net/url"
)

const (
	DefaultSequenceLength = 64
	MaxSequenceLength     = 1 << 20
)

type SequenceParams struct {
	Length int
}

func ParseSequenceParams(values url.Values) (params *SequenceParams, err error) {
	params = &SequenceParams{Length: DefaultSequenceLength}
	if err = url2.ParseInt("length", values, &params.Length); err != nil {
		return
	}
	return
}

func ParseSlotParams(values url.Values, defaultSlot cinit.Slot) (slot cinit.Slot, err error) {
	slot = defaultSlot
	if err = url2.ParseInt("symbolsPerSlot", values, &slot.SymbolsPerSlot); err != nil {
		return
	}
	if err = url2.ParseInt("slotNumber", values, &slot.SlotNumber); err != nil {
		return
	}
	if err = url2.ParseInt("symbolNumber", values, &slot.SymbolNumber); err != nil {
		return
	}
	return
}

type ReportParams struct {
	MaxBits  int
	Seed     uint64
	Resample bool
	Format   string
}

func ParseReportParams(values url.Values, maxBits int, seed uint64) (params *ReportParams, err error) {
	params = &ReportParams{
		MaxBits: maxBits,
		Seed:    seed,
		Format:  "html",
	}
	if err = url2.ParseInt("maxBits", values, &params.MaxBits); err != nil {
		return
	}
	if params.MaxBits > recovery.MaxTailBits {
		params.MaxBits = recovery.MaxTailBits
	}
	if err = url2.ParseUint64("seed", values, &params.Seed); err != nil {
		return
	}
	if err = url2.ParseBool("resample", values, &params.Resample); err != nil {
		return
	}
	if format := values.Get("format"); format != "" {
		params.Format = format
	}
	return
}
