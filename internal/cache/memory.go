package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// ResultCache holds completed pipeline results in memory so repeated
// verification of identical content skips the gateway entirely.
type ResultCache struct {
	cache *gocache.Cache
}

// NewResultCache creates a result cache with the given TTL
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ResultCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get retrieves a cached result
func (c *ResultCache) Get(key string) (*model.PipelineResult, bool) {
	if val, found := c.cache.Get(key); found {
		if result, ok := val.(*model.PipelineResult); ok {
			return result, true
		}
	}
	return nil, false
}

// Set stores a result under the default TTL
func (c *ResultCache) Set(key string, result *model.PipelineResult) {
	c.cache.Set(key, result, gocache.DefaultExpiration)
}

// Clear removes all cached results
func (c *ResultCache) Clear() {
	c.cache.Flush()
}
