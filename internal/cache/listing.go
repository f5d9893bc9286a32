package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-catalog/internal/domain"
	"github.com/spec-kit/movie-catalog/internal/kv"
	"github.com/spec-kit/movie-catalog/internal/observability"
)

const listingKeyPrefix = "movies:list:"

// ListingKey derives the cache key for one pagination window. The same
// function keys population and invalidation so the two can never drift.
func ListingKey(page, limit int) string {
	return fmt.Sprintf("%s%d:%d", listingKeyPrefix, page, limit)
}

// ListingCache is the cache-aside layer for movie listings. Redis is not
// the source of truth here: read and write failures degrade to a miss and
// are logged, never surfaced to the caller. Invalidation failures DO
// surface, because acknowledging a mutation while stale listings remain
// readable would break consistency.
type ListingCache struct {
	store   kv.Store
	ttl     time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewListingCache builds the cache layer.
func NewListingCache(store kv.Store, ttl time.Duration, logger *zap.Logger, metrics *observability.Metrics) *ListingCache {
	return &ListingCache{store: store, ttl: ttl, logger: logger, metrics: metrics}
}

// Get returns the cached listing for the window, if present.
func (c *ListingCache) Get(ctx context.Context, page, limit int) ([]domain.Movie, bool) {
	key := ListingKey(page, limit)
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if err != kv.ErrNotFound {
			c.logger.Warn("listing cache read failed", zap.String("key", key), zap.Error(err))
		}
		c.metrics.RecordCacheMiss(key)
		return nil, false
	}

	var movies []domain.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		c.logger.Warn("listing cache entry corrupt", zap.String("key", key), zap.Error(err))
		c.metrics.RecordCacheMiss(key)
		return nil, false
	}
	c.metrics.RecordCacheHit(key)
	return movies, true
}

// Set stores the listing for the window.
func (c *ListingCache) Set(ctx context.Context, page, limit int, movies []domain.Movie) {
	key := ListingKey(page, limit)
	raw, err := json.Marshal(movies)
	if err != nil {
		c.logger.Warn("listing cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, string(raw), c.ttl); err != nil {
		c.logger.Warn("listing cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes every listing entry. Any pagination window may
// contain the mutated movie, so all windows are dropped. Search results
// are never cached and need no treatment here.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	entries, err := c.store.Scan(ctx, listingKeyPrefix)
	if err != nil {
		return fmt.Errorf("scan listing keys: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.Key)
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("delete listing keys: %w", err)
	}

	c.metrics.RecordInvalidation(len(keys))
	c.logger.Debug("listing cache invalidated", zap.Int("keys", len(keys)))
	return nil
}
