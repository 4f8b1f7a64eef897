package redis

import (
	"context"
	"time"

	"payments-pipeline/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// AdmissionLock implements ports.AdmissionLock using Redis SET NX.
// It is a fast-path gate only: when Redis is unreachable it fails open and
// lets the database unique constraint arbitrate duplicates.
type AdmissionLock struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewAdmissionLock creates a new Redis-backed admission lock.
func NewAdmissionLock(client *goredis.Client, ttl time.Duration, log zerolog.Logger) *AdmissionLock {
	return &AdmissionLock{
		client: client,
		prefix: "idem:lock:",
		ttl:    ttl,
		log:    log,
	}
}

// Acquire returns true on first acquisition of the scoped key within the
// TTL window, false when the key is already held.
func (s *AdmissionLock) Acquire(ctx context.Context, merchantID, idempotencyKey string) bool {
	key := s.prefix + domain.ScopedIdempotencyKey(merchantID, idempotencyKey)
	ok, err := s.client.SetNX(ctx, key, 1, s.ttl).Result()
	if err != nil {
		s.log.Warn().Err(err).Str("merchant_id", merchantID).
			Msg("admission lock unavailable, failing open")
		return true
	}
	return ok
}
