// Package pagecache is a small in-process page cache keyed by string with
// tag-based invalidation, in the spirit of a framework data cache but as an
// explicit component that can be injected and tested.
package pagecache

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Invalidator discards every entry carrying a tag.
type Invalidator interface {
	InvalidateTag(ctx context.Context, tag string) error
}

type entry[V any] struct {
	value V
	tags  []string
}

// Cache stores values with a TTL and an optional set of tags.
//
// Every InvalidateTag call bumps the cache generation. A loader that captured
// the generation before reading its source can use SetIfGeneration so a result
// computed before an invalidation never lands in the cache after it.
type Cache[V any] struct {
	items *ttlcache.Cache[string, entry[V]]

	mu      sync.Mutex
	byTag   map[string]map[string]struct{}
	keyTags map[string][]string
	gen     uint64
	running bool
}

// New returns a cache whose entries expire after defaultTTL unless Set is
// given an explicit TTL. Reads never extend an entry's lifetime.
func New[V any](defaultTTL time.Duration) *Cache[V] {
	return &Cache[V]{
		items: ttlcache.New[string, entry[V]](
			ttlcache.WithTTL[string, entry[V]](defaultTTL),
			ttlcache.WithDisableTouchOnHit[string, entry[V]](),
		),
		byTag:   make(map[string]map[string]struct{}),
		keyTags: make(map[string][]string),
	}
}

// Start runs the expiry loop until Stop is called.
func (c *Cache[V]) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	go c.items.Start()
}

// Stop halts the expiry loop. It is a no-op if Start was never called.
func (c *Cache[V]) Stop() {
	c.mu.Lock()
	running := c.running
	c.running = false
	c.mu.Unlock()
	if running {
		c.items.Stop()
	}
}

// Get returns the live value stored under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	item := c.items.Get(key)
	if item == nil || item.IsExpired() {
		var zero V
		return zero, false
	}
	return item.Value().value, true
}

// Set stores value under key. A ttl of zero uses the cache default.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value, ttl, tags)
}

// SetIfGeneration stores value only if no invalidation happened since gen was
// read. It reports whether the value was stored.
func (c *Cache[V]) SetIfGeneration(gen uint64, key string, value V, ttl time.Duration, tags ...string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false
	}
	c.setLocked(key, value, ttl, tags)
	return true
}

// Generation returns the current invalidation generation.
func (c *Cache[V]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Delete removes a single key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.untrackLocked(key)
	c.items.Delete(key)
}

// InvalidateTag removes every entry tagged with tag. It never fails; the
// error return satisfies Invalidator.
func (c *Cache[V]) InvalidateTag(_ context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for key := range c.byTag[tag] {
		c.untrackLocked(key)
		c.items.Delete(key)
	}
	delete(c.byTag, tag)
	return nil
}

// Len reports the number of stored entries, expired ones included until the
// expiry loop collects them.
func (c *Cache[V]) Len() int {
	return c.items.Len()
}

func (c *Cache[V]) setLocked(key string, value V, ttl time.Duration, tags []string) {
	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}
	c.untrackLocked(key)
	c.items.Set(key, entry[V]{value: value, tags: tags}, ttl)

	for _, tag := range tags {
		keys, ok := c.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
	c.keyTags[key] = tags
}

func (c *Cache[V]) untrackLocked(key string) {
	for _, tag := range c.keyTags[key] {
		if keys, ok := c.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
	delete(c.keyTags, key)
}
