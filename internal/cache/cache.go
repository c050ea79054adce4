package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// AllKey is the sentinel key for the complete unfiltered collection.
const AllKey = "applications|all"

// ListKey canonicalizes filter parameters into a cache key inside the
// applications family.
func ListKey(status, search string, page int) string {
	return fmt.Sprintf("applications|status=%s|search=%s|page=%d", status, search, page)
}

// RecordKey is the cache key for a single record.
func RecordKey(id string) string {
	return "application|" + id
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache memoizes reads keyed by canonical filter parameters. Concurrent
// reads for the same key while a fetch is in flight share that fetch
// instead of issuing duplicate upstream calls. Stored values are replaced
// wholesale on refetch, never mutated, so snapshots handed out earlier
// stay valid for whoever still holds them.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	now func() time.Time // overridable in tests
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key if it is younger than ttl, otherwise
// runs loader and stores its result. A ttl of zero or less means the key is
// always stale and every read goes upstream (still coalesced).
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration, loader func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.lookup(key, ttl); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: a just-finished fetch for this key
		// may have landed while we were queued.
		if v, ok := c.lookup(key, ttl); ok {
			return v, nil
		}
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{value: v, fetchedAt: c.now()}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *Cache) lookup(key string, ttl time.Duration) (any, bool) {
	if ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetchedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops a single key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateApplications drops every key in the applications family, forcing
// the next read of any collection view to refetch.
func (c *Cache) InvalidateApplications() {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, "applications|") {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// InvalidateRecord drops the single-record key for id.
func (c *Cache) InvalidateRecord(id string) {
	c.Invalidate(RecordKey(id))
}
