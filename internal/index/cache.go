package index

import (
	"sort"
	"sync"
	"time"
)

const (
	defaultCacheTTL        = 10 * time.Minute
	defaultCacheMaxEntries = 512
)

type cachedPayload struct {
	payload   []byte
	updatedAt time.Time
	expiresAt time.Time
}

// memoryCache is a TTL cache over marshaled responses. Entries are stored as
// opaque bytes so the in-memory and Redis backends hold the same shape.
type memoryCache struct {
	mu         sync.Mutex
	entries    map[string]*cachedPayload
	ttl        time.Duration
	maxEntries int
}

func newMemoryCache(ttl time.Duration, maxEntries int) *memoryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = defaultCacheMaxEntries
	}
	return &memoryCache{
		entries:    make(map[string]*cachedPayload),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *memoryCache) get(key string, now time.Time) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if now.After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.payload, true
}

func (c *memoryCache) set(key string, payload []byte, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cachedPayload{
		payload:   payload,
		updatedAt: now,
		expiresAt: now.Add(c.ttl),
	}
	c.trimLocked(now)
}

func (c *memoryCache) trimLocked(now time.Time) {
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) <= c.maxEntries {
		return
	}

	// Drop oldest entries first.
	type pair struct {
		key   string
		entry *cachedPayload
	}
	items := make([]pair, 0, len(c.entries))
	for key, entry := range c.entries {
		items = append(items, pair{key: key, entry: entry})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].entry.updatedAt.Before(items[j].entry.updatedAt)
	})
	for i := 0; i < len(items)-c.maxEntries; i++ {
		delete(c.entries, items[i].key)
	}
}
