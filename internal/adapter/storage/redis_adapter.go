package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

const defaultRedisPrefix = "shoplist:"

// RedisAdapter stores values as plain strings under a namespace prefix. Keys
// never expire.
type RedisAdapter struct {
	client *redis.Client
	prefix string
}

func NewRedisAdapter(client *redis.Client, namespace string) *RedisAdapter {
	prefix := defaultRedisPrefix
	if namespace != "" {
		prefix = namespace + ":"
	}
	return &RedisAdapter{client: client, prefix: prefix}
}

func (r *RedisAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w: %v", key, domain.ErrStorageUnavailable, err)
	}
	return value, true, nil
}

func (r *RedisAdapter) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w: %v", key, domain.ErrStorageUnavailable, err)
	}
	return nil
}
