package cache

import (
	"errors"
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	log "github.com/sirupsen/logrus"
)

// Store persists one seed cache. Load returns CacheNotFound when nothing
// has been persisted and CacheMismatch when the persisted entries do not
// hold bits bits. Persist replaces the stored cache atomically.
type Store interface {
	Load(bits int) (*SeedCache, error)
	Persist(sc *SeedCache) error
	Path() string
}

// LoadOrBuild reads the cache if present, otherwise builds and persists it.
// A stale or corrupt cache is rebuilt only when rebuild is set.
func LoadOrBuild(store Store, bits int, slot cinit.Slot, workers int, rebuild bool) (*SeedCache, error) {
	sc, err := store.Load(bits)
	switch {
	case err == nil && sc.Slot == slot:
		log.WithFields(log.Fields{
			"path": store.Path(),
			"bits": bits,
		}).Info("Loaded seed cache")
		return sc, nil
	case err == nil:
		if !rebuild {
			return nil, fmt.Errorf("%w: cached for slot %+v", CacheMismatch, sc.Slot)
		}
		log.WithField("path", store.Path()).Warn("Seed cache built for another slot, rebuilding")
	case errors.Is(err, CacheNotFound):
		log.WithField("path", store.Path()).Info("No seed cache found")
	case errors.Is(err, CacheMismatch), errors.Is(err, CacheCorrupt):
		if !rebuild {
			return nil, err
		}
		log.WithError(err).Warn("Rebuilding seed cache")
	default:
		return nil, err
	}
	if sc, err = Build(bits, slot, workers); err != nil {
		return nil, err
	}
	if err = store.Persist(sc); err != nil {
		return nil, err
	}
	return sc, nil
}
