package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RateLimitStore implements ports.RateCounter with fixed-window counters.
type RateLimitStore struct {
	client *goredis.Client
	prefix string
}

// NewRateLimitStore creates a new Redis-backed rate limit store.
func NewRateLimitStore(client *goredis.Client) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		prefix: "rate:",
	}
}

// Incr increments the counter for a dimension's current window bucket and
// returns the new count. The expiry is set only when the key is fresh.
func (s *RateLimitStore) Incr(ctx context.Context, dimension, value string, bucket int64, window time.Duration) (int64, error) {
	key := fmt.Sprintf("%s%s:%s:%d", s.prefix, dimension, value, bucket)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis rate limit incr: %w", err)
	}

	// Set expiry only on first increment (new window)
	if count == 1 {
		s.client.Expire(ctx, key, window+time.Second) // +1s safety margin
	}
	return count, nil
}
