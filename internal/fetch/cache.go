package fetch

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"quotevault/internal/query"
)

// CachingFetcher memoizes successful responses by request key. Failures are
// never cached so the next trigger always retries the network.
type CachingFetcher struct {
	next  Fetcher
	cache *cache.Cache
}

// NewCachingFetcher wraps next with a TTL cache
func NewCachingFetcher(next Fetcher, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachingFetcher) Fetch(ctx context.Context, req query.Request) (*Response, error) {
	key := req.Key()
	if x, found := c.cache.Get(key); found {
		return x.(*Response), nil
	}
	resp, err := c.next.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, resp, cache.DefaultExpiration)
	return resp, nil
}

// Len returns the number of cached responses
func (c *CachingFetcher) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached response
func (c *CachingFetcher) Flush() {
	c.cache.Flush()
}
