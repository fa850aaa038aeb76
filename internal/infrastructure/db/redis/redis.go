package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/registryhq/birth-registry/internal/infrastructure/config"
)

const (
	connectTimeout = 5 * time.Second
	defaultAddr    = "localhost:6379"
)

// withDefaults fills in the address when the configuration leaves it empty.
func withDefaults(cfg config.RedisConfig) config.RedisConfig {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	return cfg
}

// Connect initialises the cache client from the service configuration and
// validates connectivity with a ping before handing it out.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	cfg = withDefaults(cfg)

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
