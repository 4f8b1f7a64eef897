package postgres

import (
	"context"
	"errors"
	"fmt"

	"payments-pipeline/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo implements ports.IdempotencyRepository. The table is the
// durable source of truth behind the Redis fast path.
type IdempotencyRepo struct {
	pool Pool
}

// NewIdempotencyRepo creates a new IdempotencyRepo.
func NewIdempotencyRepo(pool Pool) *IdempotencyRepo {
	return &IdempotencyRepo{pool: pool}
}

// Create persists a response snapshot inside the caller's transaction.
func (r *IdempotencyRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.IdempotencyRecord) error {
	query := `INSERT INTO idempotency_records (merchant_id, idempotency_key, payment_id, status_code, response_payload, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`

	_, err := tx.Exec(ctx, query,
		record.MerchantID, record.IdempotencyKey, record.PaymentID,
		record.StatusCode, record.ResponsePayload,
	)
	if err != nil {
		return fmt.Errorf("insert idempotency record: %w", err)
	}
	return nil
}

// Get fetches a snapshot by scope. Returns nil, nil when absent.
func (r *IdempotencyRepo) Get(ctx context.Context, merchantID, idempotencyKey string) (*domain.IdempotencyRecord, error) {
	query := `SELECT merchant_id, idempotency_key, payment_id, status_code, response_payload, created_at
		FROM idempotency_records WHERE merchant_id = $1 AND idempotency_key = $2`

	rec := &domain.IdempotencyRecord{}
	err := r.pool.QueryRow(ctx, query, merchantID, idempotencyKey).Scan(
		&rec.MerchantID, &rec.IdempotencyKey, &rec.PaymentID,
		&rec.StatusCode, &rec.ResponsePayload, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency record: %w", err)
	}
	return rec, nil
}
