package recipe

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CachedSource wraps another Source with an in-process TTL cache, so a
// session only pays for one fetch per distinct query until the entry
// expires.
type CachedSource struct {
	inner Source
	cache *gocache.Cache
	log   *zap.Logger
}

// NewCachedSource wraps inner with a cache whose entries live for ttl.
func NewCachedSource(inner Source, ttl time.Duration, log *zap.Logger) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: gocache.New(ttl, ttl),
		log:   log,
	}
}

// Search returns the cached result set for the query, fetching through the
// wrapped source on a miss. Errors are never cached.
func (s *CachedSource) Search(ctx context.Context, q Query) ([]*Recipe, error) {
	key := cacheKey(q)
	if hit, ok := s.cache.Get(key); ok {
		s.log.Debug("recipe cache hit", zap.String("key", key))
		return hit.([]*Recipe), nil
	}

	results, err := s.inner.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, results, gocache.DefaultExpiration)
	s.log.Debug("recipe cache filled", zap.String("key", key), zap.Int("results", len(results)))
	return results, nil
}

func cacheKey(q Query) string {
	return fmt.Sprintf("%s|%s|%d|%d", q.Text, q.Diet, q.MaxReadyMinutes, q.Number)
}
