package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is where the desk keeps its token when no key is configured.
const DefaultRedisKey = "healthdesk:desk:token"

// RedisBackend keeps the token under one Redis key. It lets several desk
// terminals on a shared host reuse one remembered login.
type RedisBackend struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisClient builds a client for addr (host:port).
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

// NewRedisBackend stores the token at key. A ttl of zero keeps it until
// cleared; otherwise it should match the registry's token lifetime.
func NewRedisBackend(rdb *redis.Client, key string, ttl time.Duration) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{rdb: rdb, key: key, ttl: ttl}
}

func (r *RedisBackend) Load(ctx context.Context) (string, error) {
	tok, err := r.rdb.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: redis get: %w", err)
	}
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

func (r *RedisBackend) Save(ctx context.Context, token string) error {
	if err := r.rdb.Set(ctx, r.key, token, r.ttl).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis set: %w", err)
	}
	return nil
}

func (r *RedisBackend) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis del: %w", err)
	}
	return nil
}
