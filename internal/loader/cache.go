package loader

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/source"
	"github.com/wonny/gdpdash/pkg/logger"
)

// DefaultLoadTimeout bounds a shared load once it is detached from its callers
const DefaultLoadTimeout = 2 * time.Minute

// DatasetLoader loads a Dataset from a source
type DatasetLoader interface {
	Load(ctx context.Context, src source.Source) (*contracts.Dataset, error)
}

// Cache memoizes loaded datasets by source ID
// A dataset is published only after it is fully built; concurrent Gets for the
// same ID share one load. Failed loads are not cached.
// ⭐ SSOT: 데이터셋 메모이제이션은 이 구조체에서만
type Cache struct {
	mu       sync.Mutex
	loader   DatasetLoader
	ttl      time.Duration // 0 = no expiry
	timeout  time.Duration // per load, 0 = none
	entries  map[string]*cacheEntry
	inflight map[string]*loadCall
	stats    CacheStats
	now      func() time.Time
	logger   *logger.Logger
}

type cacheEntry struct {
	dataset  *contracts.Dataset
	storedAt time.Time
}

type loadCall struct {
	done    chan struct{}
	dataset *contracts.Dataset
	err     error
}

// CacheStats reports cache activity
type CacheStats struct {
	Entries  int `json:"entries"`
	Hits     int `json:"hits"`
	Misses   int `json:"misses"`
	Loads    int `json:"loads"`
	Failures int `json:"failures"`
}

// NewCache creates a cache in front of loader; ttl 0 keeps entries until invalidated
func NewCache(loader DatasetLoader, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{
		loader:   loader,
		ttl:      ttl,
		timeout:  DefaultLoadTimeout,
		entries:  make(map[string]*cacheEntry),
		inflight: make(map[string]*loadCall),
		now:      time.Now,
		logger:   log.Component("dataset_cache"),
	}
}

// Get returns the dataset for src, loading it on a miss or after TTL expiry
func (c *Cache) Get(ctx context.Context, src source.Source) (*contracts.Dataset, error) {
	id := src.ID()

	c.mu.Lock()
	if e, ok := c.entries[id]; ok {
		if !c.expired(e) {
			c.stats.Hits++
			c.mu.Unlock()
			c.logger.WithField("source", id).Debug("Dataset cache hit")
			return e.dataset, nil
		}
		delete(c.entries, id)
		c.logger.WithField("source", id).Info("Dataset cache entry expired")
	}

	// Someone else is loading this source; wait for it
	if call, ok := c.inflight[id]; ok {
		c.mu.Unlock()
		return c.wait(ctx, call)
	}

	c.stats.Misses++
	call := &loadCall{done: make(chan struct{})}
	c.inflight[id] = call
	c.mu.Unlock()

	c.logger.WithField("source", id).Debug("Dataset cache miss")

	// The load outlives the caller that started it; every caller waits on its own ctx
	go c.load(context.WithoutCancel(ctx), src, call)
	return c.wait(ctx, call)
}

func (c *Cache) load(ctx context.Context, src source.Source, call *loadCall) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	id := src.ID()
	call.dataset, call.err = c.loader.Load(ctx, src)

	c.mu.Lock()
	c.stats.Loads++
	// An Invalidate during the load detaches the call; its result is returned but not stored
	if c.inflight[id] == call {
		delete(c.inflight, id)
		if call.err == nil {
			c.entries[id] = &cacheEntry{dataset: call.dataset, storedAt: c.now()}
		}
	}
	if call.err != nil {
		c.stats.Failures++
	}
	c.mu.Unlock()
	close(call.done)
}

func (c *Cache) wait(ctx context.Context, call *loadCall) (*contracts.Dataset, error) {
	select {
	case <-call.done:
		return call.dataset, call.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// expired must be called with mu held
func (c *Cache) expired(e *cacheEntry) bool {
	return c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl
}

// Invalidate drops the entry for a source ID; the next Get reloads it
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
	delete(c.inflight, id)
	c.logger.WithField("source", id).Info("Dataset cache entry invalidated")
}

// InvalidateAll drops every entry
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.inflight = make(map[string]*loadCall)
	c.logger.Info("Dataset cache cleared")
}

// Len returns the number of cached datasets
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns a snapshot of cache counters
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Entries = len(c.entries)
	return stats
}

// Prune removes expired entries and returns how many were dropped
func (c *Cache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}
