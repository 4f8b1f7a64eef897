package redis

import (
	"context"
	"fmt"
	"time"

	"payments-pipeline/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// AmlHistoryStore implements ports.AmlHistory as a capped per-customer list.
// Entries are "unixSeconds|rail|amount" strings, newest first.
type AmlHistoryStore struct {
	client   *goredis.Client
	maxItems int
	ttl      time.Duration
}

// NewAmlHistoryStore creates a new Redis-backed AML history store. The TTL
// should cover the longest lookback window of the checks reading it.
func NewAmlHistoryStore(client *goredis.Client, maxItems int, ttl time.Duration) *AmlHistoryStore {
	return &AmlHistoryStore{
		client:   client,
		maxItems: maxItems,
		ttl:      ttl,
	}
}

func historyKey(customerID string) string {
	return "aml:history:" + customerID
}

// Entries returns the raw history entries for a customer, newest first.
func (s *AmlHistoryStore) Entries(ctx context.Context, customerID string) ([]string, error) {
	entries, err := s.client.LRange(ctx, historyKey(customerID), 0, int64(s.maxItems)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis aml history range: %w", err)
	}
	return entries, nil
}

// Record prepends an admission to the customer's history, trims the list to
// its cap and refreshes the expiry.
func (s *AmlHistoryStore) Record(ctx context.Context, customerID string, rail domain.PaymentMethod, amount decimal.Decimal) error {
	key := historyKey(customerID)
	entry := fmt.Sprintf("%d|%s|%s", time.Now().Unix(), rail, amount.StringFixed(2))

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, entry)
	pipe.LTrim(ctx, key, 0, int64(s.maxItems-1))
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis aml history record: %w", err)
	}
	return nil
}
