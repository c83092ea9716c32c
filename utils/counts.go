package utils

import (
	"github.com/dustin/go-humanize"
	"strconv"
)

const MaxRawRate = 1000

type Count int64

func (c Count) String() string {
	return humanize.Comma(int64(c))
}

type Rate float64

func (r Rate) String() string {
	if r < MaxRawRate {
		return strconv.FormatFloat(float64(r), 'f', 2, 64) + " bit/s"
	}
	return humanize.SIWithDigits(float64(r), 2, "bit/s")
}

type Size uint64

func (s Size) String() string {
	return humanize.Bytes(uint64(s))
}
