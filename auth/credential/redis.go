package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisBackend writes a pair inside MULTI/EXEC so both keys appear together
type redisBackend struct {
	client *redis.Client
	prefix string
}

func (r *redisBackend) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *redisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// GetAll uses a single MGET so both keys come from the same point in time
func (r *redisBackend) GetAll(ctx context.Context, keys ...string) (map[string]string, error) {
	ret := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return ret, nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, r.key(k))
	}
	values, err := r.client.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, err
	}
	for i, value := range values {
		if text, ok := value.(string); ok {
			ret[keys[i]] = text
		}
	}
	return ret, nil
}

func (r *redisBackend) Put(ctx context.Context, entries map[string]string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, r.key(k), v, 0)
		}
		return nil
	})
	return err
}

func (r *redisBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, r.key(k))
	}
	return r.client.Del(ctx, prefixed...).Err()
}

// NewRedisBackend creates a backend over an existing client
func NewRedisBackend(client *redis.Client, prefix string) Backend {
	return &redisBackend{client: client, prefix: prefix}
}

// NewRedisClient configures a client from URL and verifies connectivity
func NewRedisClient(ctx context.Context, URL string) (*redis.Client, error) {
	if URL == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opt, err := redis.ParseURL(URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
