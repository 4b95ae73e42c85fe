package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares cached results between server instances. Keys are tracked
// in a set under the prefix so Invalidate can drop them all at once.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) indexKey() string {
	return r.prefix + "keys"
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	full := r.prefix + key
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, full, value, r.ttl)
	pipe.SAdd(ctx, r.indexKey(), full)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
}

func (r *Redis) Invalidate(ctx context.Context) {
	keys, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		slog.WarnContext(ctx, "cache invalidate failed", "error", err)
		return
	}
	keys = append(keys, r.indexKey())
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "cache invalidate failed", "error", err)
	}
}
