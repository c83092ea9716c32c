package utils

import (
	"github.com/fernandosanchezjr/sha256-simd"
)

type Digest [32]byte

// DigestPacked hashes the length and words of every entry in order.
func DigestPacked(entries []PackedBits) Digest {
	var ret Digest
	h := sha256.New()
	for _, entry := range entries {
		_, _ = h.Write(Uint64ToBytes(uint64(entry.Length)))
		_, _ = h.Write(entry.Bytes())
	}
	copy(ret[:], h.Sum(nil))
	return ret
}

func (d Digest) String() string {
	return hexString(d[:])
}
