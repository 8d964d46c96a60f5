// Package cache
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type Redis struct {
	client *redis.Client

	logger *zap.Logger
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.logger.Warn("cannot get cache entry", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if _, err := c.client.Set(ctx, key, value, ttl).Result(); err != nil {
		c.logger.Warn("cannot set cache entry", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
