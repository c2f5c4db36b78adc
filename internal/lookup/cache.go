package lookup

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// Cache stores place search results keyed by the exact trimmed query.
// Implementations treat every failure as a miss.
type Cache interface {
	Get(ctx context.Context, query string) ([]domain.Place, bool)
	Set(ctx context.Context, query string, places []domain.Place)
}

// MemoryCache keeps results for the lifetime of the process. Results are
// copied on the way in and out so callers never share place pointers.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]domain.Place
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]domain.Place)}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, query string) ([]domain.Place, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[query]
	if !ok {
		return nil, false
	}
	return clonePlaces(p), true
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, query string, places []domain.Place) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = clonePlaces(places)
}

func clonePlaces(in []domain.Place) []domain.Place {
	out := make([]domain.Place, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// RedisCache shares results between processes, expiring them after ttl.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// NewRedisCache returns a Cache storing JSON values under "<prefix>:places:<query>".
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration, log *slog.Logger) *RedisCache {
	if prefix == "" {
		prefix = "tj"
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl, log: log}
}

func (c *RedisCache) key(query string) string {
	return c.prefix + ":places:" + query
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, query string) ([]domain.Place, bool) {
	b, err := c.client.Get(ctx, c.key(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WarnContext(ctx, "place cache read failed", "error", err)
		}
		return nil, false
	}
	var places []domain.Place
	if err := json.Unmarshal(b, &places); err != nil {
		return nil, false
	}
	return places, true
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, query string, places []domain.Place) {
	b, err := json.Marshal(places)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(query), b, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "place cache write failed", "error", err)
	}
}
