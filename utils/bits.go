package utils

import (
	"errors"
	"fmt"
	"strings"
)

var InvalidBit = errors.New("invalid bit")

// Bits holds one bit per byte, each 0 or 1, in production order.
type Bits []byte

func ParseBits(s string) (Bits, error) {
	ret := make(Bits, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			ret[i] = 0
		case '1':
			ret[i] = 1
		default:
			return nil, fmt.Errorf("%w %q at position %d", InvalidBit, s[i], i)
		}
	}
	return ret, nil
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}

func (b Bits) Equal(other Bits) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// Tail returns the last n bits, or all of them when n exceeds the length.
func (b Bits) Tail(n int) Bits {
	if n >= len(b) {
		return b
	}
	return b[len(b)-n:]
}

// Index returns the first position where pattern starts inside b, or -1.
func (b Bits) Index(pattern Bits) int {
	if len(pattern) == 0 {
		return 0
	}
	for i := 0; i+len(pattern) <= len(b); i++ {
		if b[i:i+len(pattern)].Equal(pattern) {
			return i
		}
	}
	return -1
}

// Uint64 packs up to 64 bits with the first bit in the most significant
// position of the result.
func (b Bits) Uint64() uint64 {
	var ret uint64
	for _, bit := range b {
		ret = (ret << 1) | uint64(bit&1)
	}
	return ret
}
