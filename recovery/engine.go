// Package recovery searches the seed cache for the scrambling identifiers
// whose sequence contains an observed run of bits.
package recovery

import (
	"errors"
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/cache"
	"github.com/fernandosanchezjr/goscrambler/utils"
	"math/bits"
)

const MaxTailBits = 64

var (
	CacheUnavailable = errors.New("seed cache not built or loaded")
	InvalidTail      = errors.New("invalid observed bit count")
)

// Match is a candidate identifier and the first position in its cached
// sequence where the observed bits begin.
type Match struct {
	ScramblingId int `json:"scramblingId"`
	Position     int `json:"position"`
}

type Engine struct {
	cache   *cache.SeedCache
	workers int
}

func NewEngine(sc *cache.SeedCache, workers int) *Engine {
	return &Engine{cache: sc, workers: utils.Workers(workers)}
}

func (e *Engine) Cache() *cache.SeedCache {
	return e.cache
}

func (e *Engine) ready() error {
	if e == nil || e.cache.Len() == 0 {
		return CacheUnavailable
	}
	return nil
}

// checkTail accepts 1..MaxTailBits bits, never more than the cache holds.
func checkTail(length, cachedBits int) error {
	if length <= 0 || length > MaxTailBits {
		return fmt.Errorf("%w: %d", InvalidTail, length)
	}
	if length > cachedBits {
		return fmt.Errorf("%w: %d exceeds %d cached bits", InvalidTail, length, cachedBits)
	}
	return nil
}

func tailMask(length int) uint64 {
	return ^uint64(0) >> uint(64-length)
}

// firstMatch slides a length bit window over entry and returns where the
// first occurrence of pattern starts, or -1.
func firstMatch(entry utils.PackedBits, pattern uint64, length int) int {
	var window uint64
	mask := tailMask(length)
	i := 0
	for _, word := range entry.Words {
		for b := 63; b >= 0 && i < entry.Length; b-- {
			window = (window<<1 | (word>>uint(b))&1) & mask
			i++
			if i >= length && window == pattern {
				return i - length
			}
		}
	}
	return -1
}

// longestSuffixMatch returns the largest n <= limit such that the last n
// bits of truth occur somewhere in entry. truth holds its newest bit in
// the least significant position.
func longestSuffixMatch(entry utils.PackedBits, truth uint64, limit int) int {
	var window uint64
	best := 0
	i := 0
	for _, word := range entry.Words {
		for b := 63; b >= 0 && i < entry.Length; b-- {
			window = window<<1 | (word>>uint(b))&1
			i++
			n := bits.TrailingZeros64(window ^ truth)
			if n > i {
				n = i
			}
			if n > limit {
				n = limit
			}
			if n > best {
				best = n
				if best == limit {
					return best
				}
			}
		}
	}
	return best
}

// FindMatches checks every cached entry in parallel and returns the
// matching ones in ascending identifier order.
func (e *Engine) FindMatches(tail utils.Bits) ([]Match, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if err := checkTail(len(tail), e.cache.Bits); err != nil {
		return nil, err
	}
	pattern := tail.Uint64()
	positions := make([]int, e.cache.Len())
	utils.Partition(len(positions), e.workers, func(worker, start, end int) {
		for id := start; id < end; id++ {
			positions[id] = firstMatch(e.cache.Entries[id], pattern, len(tail))
		}
	})
	var ret []Match
	for id, position := range positions {
		if position >= 0 {
			ret = append(ret, Match{ScramblingId: id, Position: position})
		}
	}
	return ret, nil
}

// FindCandidates returns the identifiers whose cached sequence contains
// tail, ascending.
func (e *Engine) FindCandidates(tail utils.Bits) ([]int, error) {
	matches, err := e.FindMatches(tail)
	if err != nil {
		return nil, err
	}
	ret := make([]int, len(matches))
	for i, m := range matches {
		ret[i] = m.ScramblingId
	}
	return ret, nil
}

// CountBySuffix returns, for n in 1..maxBits, how many entries contain the
// last n bits of the truth entry. counts[n-1] holds the count for n.
func (e *Engine) CountBySuffix(truthId, maxBits int) ([]int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if err := checkTail(maxBits, e.cache.Bits); err != nil {
		return nil, err
	}
	truthEntry, err := e.cache.Entry(truthId)
	if err != nil {
		return nil, err
	}
	truth := truthEntry.Tail(maxBits).Uint64()
	longest := make([]int, e.cache.Len())
	utils.Partition(len(longest), e.workers, func(worker, start, end int) {
		for id := start; id < end; id++ {
			longest[id] = longestSuffixMatch(e.cache.Entries[id], truth, maxBits)
		}
	})
	histogram := make([]int, maxBits+1)
	for _, n := range longest {
		histogram[n]++
	}
	counts := make([]int, maxBits)
	running := 0
	for n := maxBits; n >= 1; n-- {
		running += histogram[n]
		counts[n-1] = running
	}
	return counts, nil
}
