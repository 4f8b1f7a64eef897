package redis

import (
	"context"
	"fmt"
	"time"

	"payments-pipeline/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client tuning. Redis sits on the admission hot path, so reads and
// writes time out well below the HTTP request deadline and the pool is
// sized for concurrent gate checks.
const (
	dialTimeout  = 5 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	poolSize     = 20
	minIdleConns = 2
	pingTimeout  = 5 * time.Second
)

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr(), err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Int("pool_size", poolSize).
		Msg("redis client ready")

	return client, nil
}
