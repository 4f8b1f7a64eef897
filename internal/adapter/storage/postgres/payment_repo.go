package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PaymentRepo implements ports.PaymentRepository.
//
// Amounts travel as text over the wire (numeric <-> decimal.Decimal) so no
// driver-level numeric codec is needed.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `payment_id, merchant_id, customer_id, account_id, amount::text, currency,
		method, destination, status, idempotency_key, risk_score, risk_decision, aml_decision,
		metadata, last_error, created_at, updated_at, version`

// Create inserts a new payment within a database transaction. Version
// starts at 1. A unique violation on (merchant_id, idempotency_key)
// surfaces to the caller for conflict recovery.
func (r *PaymentRepo) Create(ctx context.Context, tx pgx.Tx, data ports.PaymentCreateData) error {
	var metadata []byte
	if data.Metadata != nil {
		var err error
		metadata, err = json.Marshal(data.Metadata)
		if err != nil {
			return fmt.Errorf("marshal payment metadata: %w", err)
		}
	}

	query := `INSERT INTO payments (payment_id, merchant_id, customer_id, account_id, amount, currency,
		method, destination, status, idempotency_key, risk_score, risk_decision, aml_decision,
		metadata, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now(), 1)`

	_, err := tx.Exec(ctx, query,
		data.PaymentID, data.MerchantID, data.CustomerID, data.AccountID,
		data.Amount.StringFixed(2), data.Currency, data.Method, data.Destination,
		data.Status, data.IdempotencyKey, data.RiskScore, data.RiskDecision,
		data.AmlDecision, metadata,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by UUID. Returns nil, nil when absent.
func (r *PaymentRepo) GetByID(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE payment_id = $1`, paymentColumns)
	return r.scanPayment(r.pool.QueryRow(ctx, query, paymentID))
}

// GetByMerchantAndKey fetches a payment by its idempotency scope.
func (r *PaymentRepo) GetByMerchantAndKey(ctx context.Context, merchantID, idempotencyKey string) (*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE merchant_id = $1 AND idempotency_key = $2`, paymentColumns)
	return r.scanPayment(r.pool.QueryRow(ctx, query, merchantID, idempotencyKey))
}

// ClaimProcessing performs the optimistic claim to PROCESSING. The version
// predicate alone arbitrates, so a redelivery can re-claim a payment left
// PROCESSING by a transient failure.
func (r *PaymentRepo) ClaimProcessing(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID, version int64) (bool, error) {
	query := `UPDATE payments SET status = $1, version = version + 1, updated_at = now()
		WHERE payment_id = $2 AND version = $3`

	tag, err := tx.Exec(ctx, query, domain.StatusProcessing, paymentID, version)
	if err != nil {
		return false, fmt.Errorf("claim payment processing: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkConfirmed finalizes a claimed payment as CONFIRMED. The version jumps
// by two relative to the claim-observed version (claim +1, finalize +1).
func (r *PaymentRepo) MarkConfirmed(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error {
	query := `UPDATE payments SET status = $1, version = $2, last_error = NULL, updated_at = now()
		WHERE payment_id = $3`

	tag, err := tx.Exec(ctx, query, domain.StatusConfirmed, payment.Version+2, payment.PaymentID)
	if err != nil {
		return fmt.Errorf("mark payment confirmed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment not found: %s", payment.PaymentID)
	}
	return nil
}

// MarkFailed finalizes a claimed payment as FAILED with a reason.
func (r *PaymentRepo) MarkFailed(ctx context.Context, tx pgx.Tx, payment *domain.Payment, reason string) error {
	query := `UPDATE payments SET status = $1, version = $2, last_error = $3, updated_at = now()
		WHERE payment_id = $4`

	tag, err := tx.Exec(ctx, query, domain.StatusFailed, payment.Version+2, reason, payment.PaymentID)
	if err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment not found: %s", payment.PaymentID)
	}
	return nil
}

// UpdateStatus moves a payment to status (review workflow transitions),
// bumping the version.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID, status domain.PaymentStatus, lastError *string) error {
	query := `UPDATE payments SET status = $1, last_error = $2, version = version + 1, updated_at = now()
		WHERE payment_id = $3`

	tag, err := tx.Exec(ctx, query, status, lastError, paymentID)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment not found: %s", paymentID)
	}
	return nil
}

// SumOutgoingSince sums non-BLOCKED outgoing amounts for a customer+rail.
func (r *PaymentRepo) SumOutgoingSince(ctx context.Context, customerID string, rail domain.PaymentMethod, since time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0)::text FROM payments
		WHERE customer_id = $1 AND method = $2 AND created_at >= $3 AND status != $4`

	var raw string
	if err := r.pool.QueryRow(ctx, query, customerID, rail, since, domain.StatusBlocked).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("sum outgoing since: %w", err)
	}
	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse outgoing sum: %w", err)
	}
	return total, nil
}

// CountOutgoingSince counts non-BLOCKED outgoing payments for a customer+rail.
func (r *PaymentRepo) CountOutgoingSince(ctx context.Context, customerID string, rail domain.PaymentMethod, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM payments
		WHERE customer_id = $1 AND method = $2 AND created_at >= $3 AND status != $4`

	var count int
	if err := r.pool.QueryRow(ctx, query, customerID, rail, since, domain.StatusBlocked).Scan(&count); err != nil {
		return 0, fmt.Errorf("count outgoing since: %w", err)
	}
	return count, nil
}

// CountFailuresSince counts FAILED payments for a customer.
func (r *PaymentRepo) CountFailuresSince(ctx context.Context, customerID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM payments
		WHERE customer_id = $1 AND status = $2 AND created_at >= $3`

	var count int
	if err := r.pool.QueryRow(ctx, query, customerID, domain.StatusFailed, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count failures since: %w", err)
	}
	return count, nil
}

// DestinationSeen reports whether the customer paid this destination before.
// A nil destination is never seen.
func (r *PaymentRepo) DestinationSeen(ctx context.Context, customerID string, destination *string) (bool, error) {
	if destination == nil || *destination == "" {
		return false, nil
	}
	query := `SELECT EXISTS(SELECT 1 FROM payments WHERE customer_id = $1 AND destination = $2)`

	var seen bool
	if err := r.pool.QueryRow(ctx, query, customerID, *destination).Scan(&seen); err != nil {
		return false, fmt.Errorf("destination seen: %w", err)
	}
	return seen, nil
}

// CountNearThresholdSince counts non-BLOCKED payments in the structuring
// amount band [low, high] for a customer+rail.
func (r *PaymentRepo) CountNearThresholdSince(ctx context.Context, customerID string, rail domain.PaymentMethod, since time.Time, low, high decimal.Decimal) (int, error) {
	query := `SELECT COUNT(*) FROM payments
		WHERE customer_id = $1 AND method = $2 AND created_at >= $3
		AND amount >= $4 AND amount <= $5 AND status != $6`

	var count int
	err := r.pool.QueryRow(ctx, query, customerID, rail, since,
		low.StringFixed(2), high.StringFixed(2), domain.StatusBlocked).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count near threshold since: %w", err)
	}
	return count, nil
}

// CountInReview samples the review queue size.
func (r *PaymentRepo) CountInReview(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM payments WHERE status = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, domain.StatusInReview).Scan(&count); err != nil {
		return 0, fmt.Errorf("count in review: %w", err)
	}
	return count, nil
}

// scanPayment is a helper to scan a single row into a Payment.
func (r *PaymentRepo) scanPayment(row pgx.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	var rawAmount string
	var metadata []byte
	err := row.Scan(
		&p.PaymentID, &p.MerchantID, &p.CustomerID, &p.AccountID,
		&rawAmount, &p.Currency, &p.Method, &p.Destination,
		&p.Status, &p.IdempotencyKey, &p.RiskScore, &p.RiskDecision,
		&p.AmlDecision, &metadata, &p.LastError, &p.CreatedAt, &p.UpdatedAt, &p.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	if p.Amount, err = decimal.NewFromString(rawAmount); err != nil {
		return nil, fmt.Errorf("parse payment amount: %w", err)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal payment metadata: %w", err)
		}
	}
	return p, nil
}
