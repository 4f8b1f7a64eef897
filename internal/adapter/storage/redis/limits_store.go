package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"payments-pipeline/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// LimitsStore implements ports.LimitsCache. Policies and daily counters are
// best-effort caches; velocity uses a sliding-window sorted set.
type LimitsStore struct {
	client *goredis.Client
}

// NewLimitsStore creates a new Redis-backed limits store.
func NewLimitsStore(client *goredis.Client) *LimitsStore {
	return &LimitsStore{client: client}
}

func policyKey(rail domain.PaymentMethod) string {
	return "limits:policy:" + string(rail)
}

func dailyKey(dateKey, customerID string, rail domain.PaymentMethod) string {
	return fmt.Sprintf("limits:daily:%s:%s:%s", dateKey, customerID, rail)
}

func velocityKey(customerID string, rail domain.PaymentMethod) string {
	return fmt.Sprintf("limits:velocity:%s:%s", customerID, rail)
}

// GetPolicy returns the cached policy for a rail, nil on cache miss.
func (s *LimitsStore) GetPolicy(ctx context.Context, rail domain.PaymentMethod) (*domain.LimitsPolicy, error) {
	raw, err := s.client.Get(ctx, policyKey(rail)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get policy: %w", err)
	}

	var policy domain.LimitsPolicy
	if err := json.Unmarshal(raw, &policy); err != nil {
		return nil, fmt.Errorf("unmarshal cached policy: %w", err)
	}
	return &policy, nil
}

// SetPolicy caches a policy for a rail.
func (s *LimitsStore) SetPolicy(ctx context.Context, policy *domain.LimitsPolicy, ttl time.Duration) error {
	raw, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}
	if err := s.client.Set(ctx, policyKey(policy.Rail), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set policy: %w", err)
	}
	return nil
}

// GetDailyCents returns the daily spend counter in cents. The boolean
// reports whether a counter exists for the day.
func (s *LimitsStore) GetDailyCents(ctx context.Context, dateKey, customerID string, rail domain.PaymentMethod) (int64, bool, error) {
	raw, err := s.client.Get(ctx, dailyKey(dateKey, customerID, rail)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis get daily counter: %w", err)
	}

	cents, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse daily counter: %w", err)
	}
	return cents, true, nil
}

// SetDailyCents stores the daily spend counter in cents with an expiry at
// the end of the UTC day (computed by the caller).
func (s *LimitsStore) SetDailyCents(ctx context.Context, dateKey, customerID string, rail domain.PaymentMethod, cents int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, dailyKey(dateKey, customerID, rail), cents, ttl).Err(); err != nil {
		return fmt.Errorf("redis set daily counter: %w", err)
	}
	return nil
}

// VelocityCount prunes entries older than the window and returns the count
// of remaining admissions in the sliding window.
func (s *LimitsStore) VelocityCount(ctx context.Context, customerID string, rail domain.PaymentMethod, window time.Duration) (int, error) {
	key := velocityKey(customerID, rail)
	cutoff := time.Now().Add(-window).UnixNano()

	if err := s.client.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return 0, fmt.Errorf("redis velocity prune: %w", err)
	}
	count, err := s.client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis velocity count: %w", err)
	}
	return int(count), nil
}

// VelocityAdd records an admission in the sliding window.
func (s *LimitsStore) VelocityAdd(ctx context.Context, customerID string, rail domain.PaymentMethod, window time.Duration) error {
	key := velocityKey(customerID, rail)
	now := time.Now()

	member := fmt.Sprintf("%d:%s", now.UnixNano(), uuid.NewString())
	err := s.client.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: member}).Err()
	if err != nil {
		return fmt.Errorf("redis velocity add: %w", err)
	}
	s.client.Expire(ctx, key, window+time.Second)
	return nil
}
