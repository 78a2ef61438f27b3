package board

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dgraph-io/badger/v4"
)

const cacheAppName = "cotulenh"

// DefaultCacheDir returns the platform-specific directory a host should
// pass to OpenPersistentMoveCache when the caller has no preference:
// macOS under Application Support, Windows under %APPDATA%, everything
// else under XDG_DATA_HOME (or ~/.local/share).
func DefaultCacheDir() (string, error) {
	var baseDir string
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(home, "Library", "Application Support")
	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(home, "AppData", "Roaming")
		}
	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(home, ".local", "share")
		}
	}
	dir := filepath.Join(baseDir, cacheAppName, "movecache")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// PersistentMoveCache is an optional, on-disk move cache backed by
// BadgerDB, for hosts that want cached legal-move lists to survive process
// restarts (e.g. a tutorial server warming its cache ahead of time). It
// satisfies the same informal contract as MoveCache: a private
// accelerator, not part of the engine's behavior (spec.md §5). Grounded on
// a single badger.DB opened/closed once, with values JSON-encoded under
// string keys.
type PersistentMoveCache struct {
	db *badger.DB
}

// OpenPersistentMoveCache opens (creating if needed) a badger database at
// dir for storing cached move lists.
func OpenPersistentMoveCache(dir string) (*PersistentMoveCache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &PersistentMoveCache{db: db}, nil
}

// Close closes the underlying database.
func (c *PersistentMoveCache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func cacheKeyBytes(key MoveCacheKey) []byte {
	return []byte(fmt.Sprintf("mc:%016x:%t:%d:%d", key.Hash, key.Legal, key.FilterSq, key.FilterKind))
}

// Get looks up a cached move list, returning (nil, false) if absent.
func (c *PersistentMoveCache) Get(key MoveCacheKey) ([]Move, bool) {
	var moves []Move
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKeyBytes(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &moves)
		})
	})
	if err != nil || moves == nil {
		return nil, false
	}
	return moves, true
}

// Put stores moves under key.
func (c *PersistentMoveCache) Put(key MoveCacheKey, moves []Move) error {
	data, err := json.Marshal(moves)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKeyBytes(key), data)
	})
}

// Clear drops every cached entry (spec.md §5: invalidated on any
// state-mutating op).
func (c *PersistentMoveCache) Clear() error {
	return c.db.DropAll()
}
