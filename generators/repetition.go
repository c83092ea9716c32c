package generators

import (
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/generators/window"
	"github.com/fernandosanchezjr/goscrambler/utils"
)

// FindRepetitions generates up to limit bits for cInit and calls found with
// the start index of every occurrence of pattern. found returns false to
// stop early. The number of generated bits is returned.
func FindRepetitions(cInit int64, pattern utils.Bits, keep, limit int, found func(index int) bool) (int, error) {
	if err := checkLength(limit); err != nil {
		return 0, err
	}
	if keep <= 0 {
		keep = window.DefaultCapacity
	}
	g := NewGold(cInit, keep)
	if len(pattern) == 0 || len(pattern) > g.Memory().Cap() {
		return 0, fmt.Errorf("%w: length %d with window %d", InvalidPattern, len(pattern), g.Memory().Cap())
	}
	for n := 0; n < limit; n++ {
		g.Next()
		if g.Memory().HasSuffix(pattern) {
			if !found(n + 1 - len(pattern)) {
				return n + 1, nil
			}
		}
	}
	return limit, nil
}
