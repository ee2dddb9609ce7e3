// Package cachefile persists snapshots of the response cache between CLI runs.
//
// The file is a msgpack document holding a format version and the cache
// entries. A missing file is an empty cache; a file with an unknown version is
// ignored so that upgrades never fail a command.
package cachefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/petal-labs/jutge/core"
)

// Version is the current file format version.
const Version = 1

type file struct {
	Version int               `msgpack:"version"`
	Entries []core.CacheEntry `msgpack:"entries"`
}

// Load reads the entries stored at path.
func Load(path string) ([]core.CacheEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var f file
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode cache file %s: %w", path, err)
	}
	if f.Version != Version {
		return nil, nil
	}
	return f.Entries, nil
}

// Save writes entries to path, replacing its contents.
func Save(path string, entries []core.CacheEntry) error {
	data, err := msgpack.Marshal(file{Version: Version, Entries: entries})
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Remove deletes the cache file. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Restore loads path into cache. Entries of functions without a TTL in
// cache, or already expired, are dropped.
func Restore(cache *core.ResponseCache, path string) error {
	entries, err := Load(path)
	if err != nil {
		return err
	}
	cache.Restore(entries)
	return nil
}

// Persist saves the live entries of cache to path.
func Persist(cache *core.ResponseCache, path string) error {
	return Save(path, cache.Snapshot())
}
