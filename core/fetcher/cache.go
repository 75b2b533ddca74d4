package fetcher

import (
	"context"
	"encoding/json"
	"time"

	"competitor-monitor-api/core/domain"
	"competitor-monitor-api/core/interfaces"
)

const pageCachePrefix = "page:"

// CachedSource serves successful pages from a cache before delegating to
// the wrapped source. Failed pages are never stored.
type CachedSource struct {
	source interfaces.PageSource
	cache  interfaces.Cache
	ttl    time.Duration
	logger interfaces.Logger
}

// NewCachedSource wraps source with a page cache
func NewCachedSource(source interfaces.PageSource, cache interfaces.Cache, ttl time.Duration, logger interfaces.Logger) *CachedSource {
	return &CachedSource{source: source, cache: cache, ttl: ttl, logger: logger}
}

// CacheKey returns the cache key for a raw URL
func CacheKey(rawURL string) string {
	return pageCachePrefix + NormalizeURL(rawURL)
}

// Fetch implements interfaces.PageSource
func (c *CachedSource) Fetch(ctx context.Context, rawURL string) (domain.ParsedPage, error) {
	key := CacheKey(rawURL)

	if data, err := c.cache.Get(ctx, key); err == nil && data != nil {
		var page domain.ParsedPage
		if err := json.Unmarshal(data, &page); err == nil {
			c.logger.Debug("Page cache hit", map[string]interface{}{"key": key})
			return page, nil
		}
		c.logger.Warn("Discarding undecodable cached page", map[string]interface{}{"key": key})
	}

	page, err := c.source.Fetch(ctx, rawURL)
	if err != nil || page.Failed() {
		return page, err
	}

	data, err := json.Marshal(page)
	if err != nil {
		return page, nil
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache page", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return page, nil
}
