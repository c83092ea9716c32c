package storage

import (
	"errors"
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/cache"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/utils"
	"github.com/howeyc/crc16"
	log "github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"
	"os"
)

var (
	seedCacheBucket = []byte("seedCache")
	entriesBucket   = []byte("entries")
	bitsKey         = []byte("bits")
	slotKey         = []byte("slot")
	digestKey       = []byte("digest")
)

// BoltStore keeps the seed cache in a bbolt database: a seedCache bucket
// with the metadata and an entries child bucket keyed by big-endian id.
// Each entry value is the packed sequence followed by its CCITT CRC.
type BoltStore struct {
	dbPath string
}

func NewBoltStore(dbPath string) *BoltStore {
	return &BoltStore{dbPath: dbPath}
}

func (bs *BoltStore) Path() string {
	return bs.dbPath
}

func encodeSlot(slot cinit.Slot) []byte {
	ret := make([]byte, 0, 24)
	ret = append(ret, utils.Uint64ToBytes(uint64(slot.SymbolsPerSlot))...)
	ret = append(ret, utils.Uint64ToBytes(uint64(slot.SlotNumber))...)
	ret = append(ret, utils.Uint64ToBytes(uint64(slot.SymbolNumber))...)
	return ret
}

func decodeSlot(data []byte) (slot cinit.Slot, err error) {
	if len(data) != 24 {
		return slot, fmt.Errorf("%w: slot record of %d bytes", cache.CacheCorrupt, len(data))
	}
	slot.SymbolsPerSlot = int(utils.BytesToUint64(data[0:8]))
	slot.SlotNumber = int(utils.BytesToUint64(data[8:16]))
	slot.SymbolNumber = int(utils.BytesToUint64(data[16:24]))
	return
}

func encodeEntry(entry utils.PackedBits) []byte {
	data := entry.Bytes()
	return append(data, utils.Uint16ToBytes(crc16.ChecksumCCITT(data))...)
}

func decodeEntry(value []byte, bits int) (utils.PackedBits, error) {
	if len(value) < 2 {
		return utils.PackedBits{}, cache.CacheCorrupt
	}
	data, sum := value[:len(value)-2], value[len(value)-2:]
	if crc16.ChecksumCCITT(data) != uint16(sum[0])<<8|uint16(sum[1]) {
		return utils.PackedBits{}, fmt.Errorf("%w: checksum", cache.CacheCorrupt)
	}
	// bbolt values are only valid inside the transaction
	entry, err := utils.UnpackBytes(append([]byte{}, data...), bits)
	if err != nil {
		return entry, fmt.Errorf("%w: %v", cache.CacheMismatch, err)
	}
	return entry, nil
}

func (bs *BoltStore) Load(bits int) (*cache.SeedCache, error) {
	db, err := GetDB(bs.dbPath, true)
	if os.IsNotExist(err) {
		return nil, cache.CacheNotFound
	} else if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Error closing seed database")
		}
	}()
	sc := &cache.SeedCache{}
	var digest utils.Digest
	err = db.View(func(tx *bbolt.Tx) error {
		root := tx.Bucket(seedCacheBucket)
		if root == nil {
			return cache.CacheNotFound
		}
		sc.Bits = int(utils.BytesToUint64(root.Get(bitsKey)))
		if sc.Bits != bits {
			return fmt.Errorf("%w: cached %d bits, requested %d", cache.CacheMismatch, sc.Bits, bits)
		}
		var slotErr error
		if sc.Slot, slotErr = decodeSlot(root.Get(slotKey)); slotErr != nil {
			return slotErr
		}
		copy(digest[:], root.Get(digestKey))
		entries := root.Bucket(entriesBucket)
		if entries == nil {
			return fmt.Errorf("%w: missing entries", cache.CacheCorrupt)
		}
		sc.Entries = make([]utils.PackedBits, cinit.IdCount)
		count := 0
		if forErr := entries.ForEach(func(k, v []byte) error {
			if len(k) != 2 {
				return fmt.Errorf("%w: key %x", cache.CacheCorrupt, k)
			}
			id := int(k[0])<<8 | int(k[1])
			entry, entryErr := decodeEntry(v, bits)
			if entryErr != nil {
				return fmt.Errorf("entry %d: %w", id, entryErr)
			}
			sc.Entries[id] = entry
			count++
			return nil
		}); forErr != nil {
			return forErr
		}
		if count != cinit.IdCount {
			return fmt.Errorf("%w: %d entries", cache.CacheCorrupt, count)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sc.Digest() != digest {
		return nil, fmt.Errorf("%w: digest", cache.CacheCorrupt)
	}
	if err = sc.Validate(bits); err != nil {
		return nil, err
	}
	return sc, nil
}

// Persist replaces any stored cache inside a single write transaction.
func (bs *BoltStore) Persist(sc *cache.SeedCache) error {
	db, err := GetDB(bs.dbPath, false)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Error closing seed database")
		}
	}()
	digest := sc.Digest()
	err = db.Update(func(tx *bbolt.Tx) error {
		if deleteErr := tx.DeleteBucket(seedCacheBucket); deleteErr != nil && !errors.Is(deleteErr, bbolt.ErrBucketNotFound) {
			return deleteErr
		}
		root, createErr := tx.CreateBucket(seedCacheBucket)
		if createErr != nil {
			return createErr
		}
		if putErr := root.Put(bitsKey, utils.Uint64ToBytes(uint64(sc.Bits))); putErr != nil {
			return putErr
		}
		if putErr := root.Put(slotKey, encodeSlot(sc.Slot)); putErr != nil {
			return putErr
		}
		if putErr := root.Put(digestKey, digest[:]); putErr != nil {
			return putErr
		}
		entries, createErr := root.CreateBucket(entriesBucket)
		if createErr != nil {
			return createErr
		}
		entries.FillPercent = 1.0
		for id, entry := range sc.Entries {
			if putErr := entries.Put(utils.Uint16ToBytes(uint16(id)), encodeEntry(entry)); putErr != nil {
				return putErr
			}
		}
		return nil
	})
	if err == nil {
		log.WithFields(log.Fields{
			"path":   bs.dbPath,
			"digest": digest,
			"size":   sc.Size(),
		}).Info("Persisted seed cache")
	}
	return err
}
