package content

import (
	"context"
	"fmt"
	"time"

	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
	"github.com/Triaksa-Space/be-landing-cms/pkg/pagecache"
	"golang.org/x/sync/singleflight"
)

// ReaderConfig controls how long merged content is served from memory.
type ReaderConfig struct {
	// Revalidate is the lifetime of a healthy snapshot.
	Revalidate time.Duration
	// FallbackTTL is the lifetime of a snapshot built while the store was
	// unreachable, so recovery shows up sooner than Revalidate.
	FallbackTTL time.Duration
	// LoadTimeout bounds one store read. Concurrent readers share a load, so
	// it is not tied to any single request.
	LoadTimeout time.Duration
}

func (c ReaderConfig) withDefaults() ReaderConfig {
	if c.Revalidate <= 0 {
		c.Revalidate = 60 * time.Second
	}
	if c.FallbackTTL <= 0 {
		c.FallbackTTL = 5 * time.Second
	}
	if c.FallbackTTL > c.Revalidate {
		c.FallbackTTL = c.Revalidate
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = 5 * time.Second
	}
	return c
}

// CachedReader serves merged landing page content from a tagged page cache
// and reloads it from the store on a miss. Concurrent misses share one load.
type CachedReader struct {
	store Store
	cache *pagecache.Cache[Snapshot]
	cfg   ReaderConfig
	group singleflight.Group
}

func NewCachedReader(store Store, cache *pagecache.Cache[Snapshot], cfg ReaderConfig) *CachedReader {
	return &CachedReader{
		store: store,
		cache: cache,
		cfg:   cfg.withDefaults(),
	}
}

// Revalidate returns the configured lifetime of a healthy snapshot.
func (r *CachedReader) Revalidate() time.Duration {
	return r.cfg.Revalidate
}

// Get returns the current landing page content. It never fails.
func (r *CachedReader) Get(ctx context.Context) Snapshot {
	if snap, ok := r.cache.Get(CacheKey); ok {
		return snap
	}

	// Loads are grouped per generation: a reader arriving after an
	// invalidation never joins a load that started before it.
	gen := r.cache.Generation()
	v, _, _ := r.group.Do(fmt.Sprintf("%s@%d", CacheKey, gen), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.LoadTimeout)
		defer cancel()

		snap := Load(loadCtx, r.store)
		ttl := r.cfg.Revalidate
		if snap.Degraded {
			ttl = r.cfg.FallbackTTL
		}
		if !r.cache.SetIfGeneration(gen, CacheKey, snap, ttl, CacheTag) {
			logger.FromContext(ctx).Debug("Discarding landing page snapshot invalidated during load",
				logger.CacheKey(CacheKey))
		}
		return snap, nil
	})
	return v.(Snapshot)
}
