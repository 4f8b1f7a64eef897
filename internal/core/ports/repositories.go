package ports

import (
	"context"
	"time"

	"payments-pipeline/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PaymentCreateData is the structured argument for inserting a payment.
type PaymentCreateData struct {
	PaymentID      uuid.UUID
	MerchantID     string
	CustomerID     string
	AccountID      string
	Amount         decimal.Decimal
	Currency       string
	Method         domain.PaymentMethod
	Destination    *string
	Status         domain.PaymentStatus
	IdempotencyKey string
	RiskScore      int
	RiskDecision   domain.Decision
	AmlDecision    domain.Decision
	Metadata       map[string]any
}

// PaymentRepository defines persistence operations for payments.
// Methods accepting pgx.Tx are state-changing and run inside the caller's
// transaction; read methods run on the pool.
type PaymentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, data PaymentCreateData) error
	GetByID(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error)
	GetByMerchantAndKey(ctx context.Context, merchantID, idempotencyKey string) (*domain.Payment, error)

	// ClaimProcessing performs the optimistic RECEIVED -> PROCESSING claim.
	// It reports false when the version check loses the race.
	ClaimProcessing(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID, version int64) (bool, error)
	MarkConfirmed(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error
	MarkFailed(ctx context.Context, tx pgx.Tx, payment *domain.Payment, reason string) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID, status domain.PaymentStatus, lastError *string) error

	// Aggregate queries backing the limits/risk/AML DB fallbacks.
	SumOutgoingSince(ctx context.Context, customerID string, rail domain.PaymentMethod, since time.Time) (decimal.Decimal, error)
	CountOutgoingSince(ctx context.Context, customerID string, rail domain.PaymentMethod, since time.Time) (int, error)
	CountFailuresSince(ctx context.Context, customerID string, since time.Time) (int, error)
	DestinationSeen(ctx context.Context, customerID string, destination *string) (bool, error)
	CountNearThresholdSince(ctx context.Context, customerID string, rail domain.PaymentMethod, since time.Time, low, high decimal.Decimal) (int, error)
	CountInReview(ctx context.Context) (int, error)
}

// OutboxRepository defines persistence for the transactional outbox.
type OutboxRepository interface {
	Add(ctx context.Context, tx pgx.Tx, aggregateID uuid.UUID, eventType domain.EventType, payload map[string]any) error
	FetchPendingRequested(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkSent(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) error
	MarkFailed(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, attempts int) error
	Reschedule(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, attempts int, nextAttemptAt time.Time) error
	BacklogSize(ctx context.Context) (int, error)
	OldestPendingLag(ctx context.Context) (time.Duration, error)
}

// CustomerRepository reads externally seeded customers.
type CustomerRepository interface {
	GetByID(ctx context.Context, customerID string) (*domain.Customer, error)
}

// PolicyRepository reads externally seeded per-rail limits policies.
type PolicyRepository interface {
	GetByRail(ctx context.Context, rail domain.PaymentMethod) (*domain.LimitsPolicy, error)
}

// IdempotencyRepository persists response snapshots (DB source of truth).
type IdempotencyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, record *domain.IdempotencyRecord) error
	Get(ctx context.Context, merchantID, idempotencyKey string) (*domain.IdempotencyRecord, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
