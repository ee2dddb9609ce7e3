package core

import (
	"encoding/json"
	"sync"
	"time"
)

// CacheEntry is one cached reply. Exported so that snapshots can be persisted.
type CacheEntry struct {
	Key       string          `json:"key" msgpack:"key"`
	Func      string          `json:"func" msgpack:"func"`
	Output    json.RawMessage `json:"output" msgpack:"output"`
	Downloads []Download      `json:"downloads,omitempty" msgpack:"downloads,omitempty"`
	Stored    time.Time       `json:"stored" msgpack:"stored"`
}

// ResponseCache caches replies of functions with a client-side TTL.
// ResponseCache is safe for concurrent use.
type ResponseCache struct {
	mu      sync.RWMutex
	ttls    map[string]time.Duration
	entries map[string]CacheEntry
	now     func() time.Time
}

// NewResponseCache creates a cache with the given per-function TTLs.
func NewResponseCache(ttls map[string]time.Duration) *ResponseCache {
	c := &ResponseCache{
		ttls:    make(map[string]time.Duration, len(ttls)),
		entries: make(map[string]CacheEntry),
		now:     time.Now,
	}
	for fn, ttl := range ttls {
		c.ttls[fn] = ttl
	}
	return c
}

// CacheKey returns the cache key of a call: the JSON of its function and input.
func CacheKey(fn string, input any) (string, error) {
	data, err := json.Marshal(struct {
		Func  string `json:"func"`
		Input any    `json:"input"`
	}{fn, input})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetTTL sets the TTL of a function. A non-positive ttl disables caching for it.
func (c *ResponseCache) SetTTL(fn string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ttl <= 0 {
		delete(c.ttls, fn)
		return
	}
	c.ttls[fn] = ttl
}

// TTL returns the TTL of a function and whether it has one.
func (c *ResponseCache) TTL(fn string) (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ttl, ok := c.ttls[fn]
	return ttl, ok
}

// Cacheable reports whether the reply of call may be cached.
func (c *ResponseCache) Cacheable(call *Call) bool {
	if len(call.Files) > 0 {
		return false
	}
	_, ok := c.TTL(call.Func)
	return ok
}

// Get returns the cached result for key. Expired entries are removed.
func (c *ResponseCache) Get(key string) (*Result, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.expired(entry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	return &Result{Output: cloneBytes(entry.Output), Downloads: cloneDownloads(entry.Downloads)}, true
}

// Set stores result under key.
func (c *ResponseCache) Set(key, fn string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = CacheEntry{
		Key:       key,
		Func:      fn,
		Output:    cloneBytes(result.Output),
		Downloads: cloneDownloads(result.Downloads),
		Stored:    c.now(),
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes every entry.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]CacheEntry)
	c.mu.Unlock()
}

// Snapshot returns the live entries.
func (c *ResponseCache) Snapshot() []CacheEntry {
	c.removeExpired()

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]CacheEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry.clone())
	}
	return out
}

// Restore replaces the cache contents with entries, skipping expired ones
// and ones for functions without a TTL.
func (c *ResponseCache) Restore(entries []CacheEntry) {
	c.mu.Lock()
	c.entries = make(map[string]CacheEntry, len(entries))
	for _, entry := range entries {
		c.entries[entry.Key] = entry.clone()
	}
	c.mu.Unlock()

	c.removeExpired()
}

func (c *ResponseCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if c.expiredLocked(entry) {
			delete(c.entries, key)
		}
	}
}

func (c *ResponseCache) expired(entry CacheEntry) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiredLocked(entry)
}

func (c *ResponseCache) expiredLocked(entry CacheEntry) bool {
	ttl, ok := c.ttls[entry.Func]
	if !ok {
		return true
	}
	return c.now().After(entry.Stored.Add(ttl))
}

// clone returns a copy of e sharing no memory with it.
func (e CacheEntry) clone() CacheEntry {
	e.Output = cloneBytes(e.Output)
	e.Downloads = cloneDownloads(e.Downloads)
	return e
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func cloneDownloads(downloads []Download) []Download {
	if downloads == nil {
		return nil
	}
	out := make([]Download, len(downloads))
	for i, d := range downloads {
		d.Data = cloneBytes(d.Data)
		out[i] = d
	}
	return out
}
