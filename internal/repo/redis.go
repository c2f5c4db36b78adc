package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisSlots stores each slot as a plain string value under a prefixed key.
type RedisSlots struct {
	client *redis.Client
	prefix string
}

// NewRedisSlots returns a SlotRepo using client. Keys are written as
// "<prefix>:slot:<key>".
func NewRedisSlots(client *redis.Client, prefix string) *RedisSlots {
	return &RedisSlots{client: client, prefix: prefix}
}

// Get implements SlotRepo.
func (r *RedisSlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, Key(r.prefix, "slot", key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("repo.RedisSlots.Get: %w", err)
	}
	return b, true, nil
}

// Put implements SlotRepo. Slots never expire.
func (r *RedisSlots) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, Key(r.prefix, "slot", key), value, 0).Err(); err != nil {
		return fmt.Errorf("repo.RedisSlots.Put: %w", err)
	}
	return nil
}

// Key joins a prefix and non-empty parts with ":".
func Key(prefix string, parts ...string) string {
	if prefix == "" {
		prefix = "tj"
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range parts {
		if part != "" {
			sb.WriteString(":")
			sb.WriteString(part)
		}
	}
	return sb.String()
}
