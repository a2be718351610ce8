package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/config"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

func NewRedisClient(cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	log.Info("Connect Redis successfully.")
	return rdb, nil
}

type redisResponseCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisResponseCache stores upstream bodies under prefix+key.
func NewRedisResponseCache(rdb *redis.Client, prefix string) service.ResponseCache {
	return &redisResponseCache{rdb: rdb, prefix: prefix}
}

func (c *redisResponseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return b, true, nil
}

func (c *redisResponseCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, c.prefix+key, body, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
