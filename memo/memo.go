// Package memo caches regressions keyed by a fingerprint of the fit request.
//
// A Cache wraps a pava.Fitter. Repeated fits of the same series with the same
// fitter settings are served from memory until the entry expires.
//
// Keys are 64-bit xxHash fingerprints. A cached regression whose length
// differs from the request is refitted, so a collision can only return a
// wrong fit for two series of equal length; at 64 bits that risk is accepted.
package memo

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/arloliu/isotonic/model"
	"github.com/arloliu/isotonic/pava"
	"github.com/patrickmn/go-cache"
)

// Cache memoizes the results of one Fitter. It is safe for concurrent use.
type Cache struct {
	fitter *pava.Fitter
	items  *cache.Cache

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// New creates a cache for fitter whose entries expire after ttl.
// A non-positive ttl keeps entries until Flush.
func New(fitter *pava.Fitter, ttl time.Duration) *Cache {
	expiration, cleanup := ttl, ttl
	if ttl <= 0 {
		expiration, cleanup = cache.NoExpiration, 0
	}

	return &Cache{
		fitter: fitter,
		items:  cache.New(expiration, cleanup),
	}
}

// Fit returns the regression of values and weights under the cached fitter.
//
// Returns:
//   - pava.Regression: A copy of the regression, owned by the caller
//   - bool: Whether the result came from the cache
//   - error: The fitter's validation errors; failed fits are not cached
func (c *Cache) Fit(values, weights []float64) (pava.Regression, bool, error) {
	key := c.key(values, weights)

	if v, ok := c.items.Get(key); ok {
		if r, _ := v.(pava.Regression); r.Len() == len(values) {
			c.hits.Add(1)

			return r.Clone(), true, nil
		}
	}
	c.misses.Add(1)

	r, err := c.fitter.Fit(values, weights)
	if err != nil {
		return pava.Regression{}, false, err
	}
	c.items.SetDefault(key, r)

	return r.Clone(), false, nil
}

// Len returns the number of cached entries, including expired ones not yet
// cleaned up.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// Stats returns the hit and miss counts since New, and the current entry count.
// A failed fit counts as a miss.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.items.ItemCount(),
	}
}

// Flush removes all entries.
func (c *Cache) Flush() {
	c.items.Flush()
}

func (c *Cache) key(values, weights []float64) string {
	return strconv.FormatUint(model.FitterFingerprint(c.fitter, values, weights), 16)
}
