package utils

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var InvalidPackedLength = errors.New("invalid packed bits length")

// PackedBits stores bits 64 to a word, first bit in the most significant
// position of the first word.
type PackedBits struct {
	Length int
	Words  []uint64
}

func wordCount(length int) int {
	return (length + 63) / 64
}

func NewPackedBits(length int) PackedBits {
	return PackedBits{Length: length, Words: make([]uint64, wordCount(length))}
}

func Pack(b Bits) PackedBits {
	ret := NewPackedBits(len(b))
	for i, bit := range b {
		ret.Set(i, bit)
	}
	return ret
}

func (pb PackedBits) Set(i int, bit byte) {
	shift := uint(63 - i&63)
	if bit&1 == 1 {
		pb.Words[i>>6] |= 1 << shift
	} else {
		pb.Words[i>>6] &^= 1 << shift
	}
}

func (pb PackedBits) Bit(i int) byte {
	return byte(pb.Words[i>>6]>>uint(63-i&63)) & 1
}

func (pb PackedBits) Unpack() Bits {
	ret := make(Bits, pb.Length)
	for i := range ret {
		ret[i] = pb.Bit(i)
	}
	return ret
}

// Tail unpacks the last n bits.
func (pb PackedBits) Tail(n int) Bits {
	if n > pb.Length {
		n = pb.Length
	}
	ret := make(Bits, n)
	start := pb.Length - n
	for i := range ret {
		ret[i] = pb.Bit(start + i)
	}
	return ret
}

func (pb PackedBits) Equal(other PackedBits) bool {
	if pb.Length != other.Length || len(pb.Words) != len(other.Words) {
		return false
	}
	for i := range pb.Words {
		if pb.Words[i] != other.Words[i] {
			return false
		}
	}
	return true
}

func (pb PackedBits) Bytes() []byte {
	ret := make([]byte, len(pb.Words)*8)
	for i, w := range pb.Words {
		binary.BigEndian.PutUint64(ret[i*8:], w)
	}
	return ret
}

func UnpackBytes(data []byte, length int) (PackedBits, error) {
	count := wordCount(length)
	if len(data) != count*8 {
		return PackedBits{}, fmt.Errorf("%w: %d bytes for %d bits", InvalidPackedLength, len(data), length)
	}
	ret := PackedBits{Length: length, Words: make([]uint64, count)}
	for i := range ret.Words {
		ret.Words[i] = binary.BigEndian.Uint64(data[i*8:])
	}
	return ret, nil
}
