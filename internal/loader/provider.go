package loader

import (
	"context"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/source"
)

// Provider binds one source to a cache and serves its dataset
type Provider struct {
	cache *Cache
	src   source.Source
}

var _ contracts.DatasetProvider = (*Provider)(nil)

// NewProvider creates a provider for src
func NewProvider(cache *Cache, src source.Source) *Provider {
	return &Provider{cache: cache, src: src}
}

// Dataset returns the cached dataset, loading it on first use
func (p *Provider) Dataset(ctx context.Context) (*contracts.Dataset, error) {
	return p.cache.Get(ctx, p.src)
}

// Reload drops the cached dataset and loads it again
func (p *Provider) Reload(ctx context.Context) (*contracts.Dataset, error) {
	p.cache.Invalidate(p.src.ID())
	return p.cache.Get(ctx, p.src)
}

// SourceID returns the identity of the served source
func (p *Provider) SourceID() string {
	return p.src.ID()
}

// Stats returns the underlying cache counters
func (p *Provider) Stats() CacheStats {
	return p.cache.Stats()
}

// Prune removes expired cache entries
func (p *Provider) Prune() int {
	return p.cache.Prune()
}
