package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// CacheMetrics receives cache events. The telemetry metrics collector
// implements it.
type CacheMetrics interface {
	RecordCacheHit()
	RecordCacheMiss()
	SetCacheEntries(n int)
}

type cacheEntry struct {
	result  Result
	expires time.Time
}

// CachedLookuper memoises successful lookups of another Lookuper.
type CachedLookuper struct {
	next    Lookuper
	ttl     time.Duration
	entries *xsync.MapOf[string, cacheEntry]
	metrics CacheMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewCachedLookuper wraps next with a cache whose entries live for ttl.
// A non-positive ttl keeps entries until Purge or Clear removes them.
func NewCachedLookuper(next Lookuper, ttl time.Duration, logger *slog.Logger) *CachedLookuper {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedLookuper{
		next:    next,
		ttl:     ttl,
		entries: xsync.NewMapOf[string, cacheEntry](),
		logger:  logger.With("component", "lookup.cache"),
		now:     time.Now,
	}
}

// WithMetrics attaches a metrics sink and returns c.
func (c *CachedLookuper) WithMetrics(m CacheMetrics) *CachedLookuper {
	c.metrics = m
	return c
}

// Lookup implements Lookuper.
func (c *CachedLookuper) Lookup(ctx context.Context, req Request) (Result, error) {
	key := req.Credentials.CacheKey(req.Name)

	if entry, ok := c.entries.Load(key); ok {
		if c.ttl <= 0 || c.now().Before(entry.expires) {
			if c.metrics != nil {
				c.metrics.RecordCacheHit()
			}
			return entry.result, nil
		}
		c.entries.Delete(key)
	}
	if c.metrics != nil {
		c.metrics.RecordCacheMiss()
	}

	result, err := c.next.Lookup(ctx, req)
	if err != nil {
		return Result{}, err
	}

	c.entries.Store(key, cacheEntry{result: result, expires: c.now().Add(c.ttl)})
	c.reportSize()
	return result, nil
}

// Purge removes expired entries and returns how many were removed.
func (c *CachedLookuper) Purge() int {
	if c.ttl <= 0 {
		return 0
	}
	now := c.now()
	removed := 0
	c.entries.Range(func(key string, entry cacheEntry) bool {
		if !now.Before(entry.expires) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	c.reportSize()
	return removed
}

// Clear removes every entry.
func (c *CachedLookuper) Clear() {
	c.entries.Clear()
	c.reportSize()
}

// Len returns the number of cached entries, expired ones included.
func (c *CachedLookuper) Len() int {
	return c.entries.Size()
}

func (c *CachedLookuper) reportSize() {
	if c.metrics != nil {
		c.metrics.SetCacheEntries(c.entries.Size())
	}
}
