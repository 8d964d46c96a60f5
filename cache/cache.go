// Package cache
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/types"
)

type Adapter string

const (
	MemoryAdapter Adapter = "memory"
	RedisAdapter  Adapter = "redis"
)

const (
	KeyTokenomics       = "tokenomics"
	KeyBurnStats        = "burn_stats"
	KeyBurnWalletTokens = "burn_wallet_tokens"
)

// ErrCacheMiss is returned by Get when the key was never set or has expired.
var ErrCacheMiss = types.ErrCacheMiss

type Config struct {
	Adapter  Adapter
	URL      string
	DB       int
	Password string

	IsFlush bool

	Logger *zap.Logger
}

// Client stores JSON payloads under a key with an absolute expiration.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func New(cfg Config) (Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	switch cfg.Adapter {
	case MemoryAdapter, "":
		return NewMemory(cfg.Logger), nil
	case RedisAdapter:
		return newRedis(cfg)
	}
	return nil, errors.New("invalid cache config")
}

func newRedis(cfg Config) (Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	if cfg.IsFlush {
		if err := flushDB(context.Background(), redisClient); err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger.With(zap.String("cache", "redis"))
	return &Redis{
		client: redisClient,
		logger: logger,
	}, nil
}

type flusher interface {
	FlushDB(ctx context.Context) *redis.StatusCmd
}

func flushDB(ctx context.Context, client flusher) error {
	msg, err := client.FlushDB(ctx).Result()
	if err != nil {
		return err
	}
	if msg != "OK" {
		return fmt.Errorf("unexpected FLUSHDB reply %q", msg)
	}
	return nil
}
