package utils

import (
	"crypto/rand"
	"encoding/binary"
	"gonum.org/v1/gonum/mathext/prng"
)

func randomSeed() uint64 {
	var data [8]byte
	if _, err := rand.Read(data[:]); err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint64(data[:]) | 1
}

// RandomSource draws identifiers uniformly. A zero seed picks one from
// crypto/rand.
type RandomSource struct {
	Seed uint64
	rng  *prng.Xoshiro256starstar
}

func NewRandomSource(seed uint64) *RandomSource {
	if seed == 0 {
		seed = randomSeed()
	}
	return &RandomSource{Seed: seed, rng: prng.NewXoshiro256starstar(seed)}
}

func (rs *RandomSource) Uint64() uint64 {
	return rs.rng.Uint64()
}

// Intn returns a value in [0, n) without modulo bias.
func (rs *RandomSource) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}
	max := uint64(n)
	limit := ^uint64(0) - (^uint64(0) % max)
	for {
		v := rs.rng.Uint64()
		if v < limit {
			return int(v % max)
		}
	}
}
