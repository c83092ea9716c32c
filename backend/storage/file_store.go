package storage

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/cache"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/utils"
	log "github.com/sirupsen/logrus"
	"io/ioutil"
	"os"
	"path/filepath"
)

const fileFormatVersion = 1

type fileFormat struct {
	Version int
	Bits    int
	Slot    cinit.Slot
	Digest  utils.Digest
	Entries []utils.PackedBits
}

// FileStore keeps the seed cache in one gob file. Persist writes a
// temporary file next to the target and renames it into place, so readers
// see either the old cache or the new one.
type FileStore struct {
	filePath string
}

func NewFileStore(filePath string) *FileStore {
	return &FileStore{filePath: filePath}
}

func (fs *FileStore) Path() string {
	return fs.filePath
}

func (fs *FileStore) Load(bits int) (*cache.SeedCache, error) {
	f, err := os.Open(fs.filePath)
	if os.IsNotExist(err) {
		return nil, cache.CacheNotFound
	} else if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Error closing file")
		}
	}()
	var content fileFormat
	if err = gob.NewDecoder(bufio.NewReader(f)).Decode(&content); err != nil {
		return nil, fmt.Errorf("%w: %v", cache.CacheCorrupt, err)
	}
	if content.Version != fileFormatVersion {
		return nil, fmt.Errorf("%w: format version %d", cache.CacheCorrupt, content.Version)
	}
	sc := &cache.SeedCache{Bits: content.Bits, Slot: content.Slot, Entries: content.Entries}
	if err = sc.Validate(bits); err != nil {
		return nil, err
	}
	if sc.Digest() != content.Digest {
		return nil, fmt.Errorf("%w: digest", cache.CacheCorrupt)
	}
	return sc, nil
}

func (fs *FileStore) Persist(sc *cache.SeedCache) (err error) {
	dir, base := filepath.Split(fs.filePath)
	if dir == "" {
		dir = "."
	}
	tmp, err := ioutil.TempFile(dir, base+".tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	content := fileFormat{
		Version: fileFormatVersion,
		Bits:    sc.Bits,
		Slot:    sc.Slot,
		Digest:  sc.Digest(),
		Entries: sc.Entries,
	}
	w := bufio.NewWriter(tmp)
	if err = gob.NewEncoder(w).Encode(&content); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), fs.filePath); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path":   fs.filePath,
		"digest": content.Digest,
		"size":   sc.Size(),
	}).Info("Persisted seed cache")
	return nil
}
