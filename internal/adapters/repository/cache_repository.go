package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/collabtodo/core/internal/infrastructure/config"
	"github.com/collabtodo/core/internal/ports"
)

// CacheRepositoryImpl implements the CacheRepository interface on Redis.
type CacheRepositoryImpl struct {
	client *redis.Client
}

// NewCacheRepository creates a new Redis-backed cache repository
func NewCacheRepository(cfg config.RedisConfig) (ports.CacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &CacheRepositoryImpl{client: client}, nil
}

// NewCacheRepositoryWithClient wraps an existing client. Used in tests.
func NewCacheRepositoryWithClient(client *redis.Client) ports.CacheRepository {
	return &CacheRepositoryImpl{client: client}
}

func (r *CacheRepositoryImpl) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (r *CacheRepositoryImpl) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return value, true, nil
}

func (r *CacheRepositoryImpl) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
