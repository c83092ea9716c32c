package storage

import (
	"errors"
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/cache"
	"github.com/fernandosanchezjr/goscrambler/utils"
	"go.etcd.io/bbolt"
	"os"
	"path"
	"time"
)

const (
	DBPath    = "db"
	DBFile    = "seeds.db"
	CachePath = "cache"
	CacheFile = "seed_cache.gob"
)

const openTimeout = 5 * time.Second

func GetDBPath() (string, error) {
	folder, err := utils.GetSubFolder(DBPath)
	if err != nil {
		return "", err
	}
	return path.Join(folder, DBFile), nil
}

func GetCacheFilePath() (string, error) {
	folder, err := utils.GetSubFolder(CachePath)
	if err != nil {
		return "", err
	}
	return path.Join(folder, CacheFile), nil
}

// GetDB opens the database for one operation. Read-only handles share the
// file lock so several readers can load while no rebuild is running.
func GetDB(dbPath string, readOnly bool) (*bbolt.DB, error) {
	if readOnly {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, err
		}
	}
	return bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout, ReadOnly: readOnly})
}

const (
	BoltKind = "bolt"
	FileKind = "file"
)

var InvalidStoreKind = errors.New("invalid store kind")

// NewStore returns the store of the given kind at storePath, or at its
// default location in the home folder when storePath is empty.
func NewStore(kind, storePath string) (cache.Store, error) {
	var err error
	switch kind {
	case BoltKind, "":
		if storePath == "" {
			if storePath, err = GetDBPath(); err != nil {
				return nil, err
			}
		}
		return NewBoltStore(storePath), nil
	case FileKind:
		if storePath == "" {
			if storePath, err = GetCacheFilePath(); err != nil {
				return nil, err
			}
		}
		return NewFileStore(storePath), nil
	default:
		return nil, fmt.Errorf("%w: %q", InvalidStoreKind, kind)
	}
}
