package cache

import (
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/generators"
	"github.com/fernandosanchezjr/goscrambler/utils"
	log "github.com/sirupsen/logrus"
	"sync/atomic"
	"time"
)

const progressInterval = 4096

// SeedCache maps every scrambling identifier to the first Bits bits of its
// sequence. Entries[id] belongs to identifier id.
type SeedCache struct {
	Bits    int
	Slot    cinit.Slot
	Entries []utils.PackedBits
}

func (sc *SeedCache) Len() int {
	if sc == nil {
		return 0
	}
	return len(sc.Entries)
}

func (sc *SeedCache) Entry(scramblingId int) (utils.PackedBits, error) {
	if err := cinit.CheckScramblingId(scramblingId); err != nil {
		return utils.PackedBits{}, err
	}
	if scramblingId >= len(sc.Entries) {
		return utils.PackedBits{}, fmt.Errorf("%w: no entry for %d", CacheCorrupt, scramblingId)
	}
	return sc.Entries[scramblingId], nil
}

// Validate checks the entry count and that every entry holds bits bits.
func (sc *SeedCache) Validate(bits int) error {
	if sc.Bits != bits {
		return fmt.Errorf("%w: cached %d bits, requested %d", CacheMismatch, sc.Bits, bits)
	}
	if len(sc.Entries) != cinit.IdCount {
		return fmt.Errorf("%w: %d entries", CacheCorrupt, len(sc.Entries))
	}
	for id, entry := range sc.Entries {
		if entry.Length != bits || len(entry.Words) != (bits+63)/64 {
			return fmt.Errorf("%w: entry %d holds %d bits, requested %d", CacheMismatch, id, entry.Length, bits)
		}
	}
	return nil
}

func (sc *SeedCache) Equal(other *SeedCache) bool {
	if sc.Bits != other.Bits || sc.Slot != other.Slot || len(sc.Entries) != len(other.Entries) {
		return false
	}
	for id := range sc.Entries {
		if !sc.Entries[id].Equal(other.Entries[id]) {
			return false
		}
	}
	return true
}

func (sc *SeedCache) Digest() utils.Digest {
	return utils.DigestPacked(sc.Entries)
}

// Size is the packed payload size.
func (sc *SeedCache) Size() utils.Size {
	var ret uint64
	for _, entry := range sc.Entries {
		ret += uint64(len(entry.Words) * 8)
	}
	return utils.Size(ret)
}

// Build generates every entry with the identifier space split across
// workers. Each worker writes only its own slots of Entries.
func Build(bits int, slot cinit.Slot, workers int) (*SeedCache, error) {
	if bits <= 0 {
		return nil, fmt.Errorf("%w: %d", InvalidBits, bits)
	}
	sc := &SeedCache{
		Bits:    bits,
		Slot:    slot,
		Entries: make([]utils.PackedBits, cinit.IdCount),
	}
	workers = utils.Workers(workers)
	errs := make([]error, workers)
	var done int64
	start := time.Now()
	log.WithFields(log.Fields{
		"bits":    bits,
		"entries": utils.Count(cinit.IdCount),
		"workers": workers,
	}).Info("Building seed cache")
	utils.Partition(cinit.IdCount, workers, func(worker, first, end int) {
		for id := first; id < end; id++ {
			cInit, err := cinit.Compute(id, slot)
			if err != nil {
				errs[worker] = err
				return
			}
			if sc.Entries[id], err = generators.GeneratePacked(bits, cInit); err != nil {
				errs[worker] = err
				return
			}
			if count := atomic.AddInt64(&done, 1); count%progressInterval == 0 {
				log.WithFields(log.Fields{
					"done":    utils.Count(count),
					"elapsed": time.Since(start).Round(time.Millisecond),
				}).Debug("Seed cache progress")
			}
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	elapsed := time.Since(start)
	log.WithFields(log.Fields{
		"bits":    bits,
		"size":    sc.Size(),
		"elapsed": elapsed.Round(time.Millisecond),
		"rate":    utils.Rate(float64(bits) * cinit.IdCount / elapsed.Seconds()),
	}).Info("Built seed cache")
	return sc, nil
}
