package ports

import (
	"context"
	"time"

	"payments-pipeline/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Cache Ports (Redis layer) ---

// AdmissionLock is the idempotency gate fast path. Acquire returns true on
// first acquisition within the TTL window. Cache failures degrade to true:
// the DB unique constraint is the authoritative check.
type AdmissionLock interface {
	Acquire(ctx context.Context, merchantID, idempotencyKey string) bool
}

// RateCounter increments a fixed-window counter and returns the new value.
type RateCounter interface {
	Incr(ctx context.Context, dimension, value string, bucket int64, window time.Duration) (int64, error)
}

// LimitsCache backs the limits service. Errors signal the caller to fall
// back to the authoritative DB aggregates.
type LimitsCache interface {
	GetPolicy(ctx context.Context, rail domain.PaymentMethod) (*domain.LimitsPolicy, error)
	SetPolicy(ctx context.Context, policy *domain.LimitsPolicy, ttl time.Duration) error
	GetDailyCents(ctx context.Context, dateKey, customerID string, rail domain.PaymentMethod) (int64, bool, error)
	SetDailyCents(ctx context.Context, dateKey, customerID string, rail domain.PaymentMethod, cents int64, ttl time.Duration) error
	VelocityCount(ctx context.Context, customerID string, rail domain.PaymentMethod, window time.Duration) (int, error)
	VelocityAdd(ctx context.Context, customerID string, rail domain.PaymentMethod, window time.Duration) error
}

// AmlHistory is the capped per-customer append-only history backing the AML
// aggregate and structuring checks. Entries returns nil with an error when
// the cache is unreachable (DB fallback applies).
type AmlHistory interface {
	Entries(ctx context.Context, customerID string) ([]string, error)
	Record(ctx context.Context, customerID string, rail domain.PaymentMethod, amount decimal.Decimal) error
}

// --- Provider Ports ---

// ProviderRequest is the confirm call payload.
type ProviderRequest struct {
	PaymentID  uuid.UUID            `json:"payment_id"`
	MerchantID string               `json:"merchant_id"`
	Amount     decimal.Decimal      `json:"amount"`
	Currency   string               `json:"currency"`
	Method     domain.PaymentMethod `json:"method"`
}

// ProviderResponse is the confirm call result.
type ProviderResponse struct {
	ProviderReference string `json:"provider_reference"`
	Confirmed         bool   `json:"confirmed"`
	Provider          string `json:"provider"`
	Duplicate         bool   `json:"duplicate"`
	PartialFailure    bool   `json:"partial_failure"`
}

// ProviderClient performs a single confirm round-trip against the provider
// HTTP service. Timeouts and 5xx map to the transient error categories.
type ProviderClient interface {
	Confirm(ctx context.Context, strategy domain.ProviderStrategy, req ProviderRequest) (*ProviderResponse, error)
}

// ProviderDriver executes a payment against its rail's provider behind the
// bulkhead, circuit breaker and retry harness.
type ProviderDriver interface {
	Execute(ctx context.Context, payment *domain.Payment) (*ProviderResponse, error)
}

// --- Service Ports (Business Logic) ---

// AdmissionRequest is the validated admission input.
type AdmissionRequest struct {
	MerchantID     string
	CustomerID     string
	AccountID      string
	IdempotencyKey string
	Amount         decimal.Decimal
	Currency       string
	Method         domain.PaymentMethod
	Destination    *string
	Metadata       map[string]any
	TraceID        string
}

// AdmissionResponse is the accepted-response shape, also snapshotted as the
// idempotency record payload.
type AdmissionResponse struct {
	PaymentID    uuid.UUID            `json:"payment_id"`
	Status       domain.PaymentStatus `json:"status"`
	TraceID      string               `json:"trace_id"`
	RiskDecision domain.Decision      `json:"risk_decision"`
	AmlDecision  domain.Decision      `json:"aml_decision"`
}

// AdmissionService orchestrates the admission pipeline.
type AdmissionService interface {
	Create(ctx context.Context, req AdmissionRequest) (*AdmissionResponse, error)
}

// ReviewService drives manual approve/reject transitions from IN_REVIEW.
type ReviewService interface {
	Approve(ctx context.Context, paymentID uuid.UUID, traceID string) (*AdmissionResponse, error)
	Reject(ctx context.Context, paymentID uuid.UUID, traceID string) (*AdmissionResponse, error)
}

// PaymentQueryService serves the status projection endpoint.
type PaymentQueryService interface {
	Get(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error)
}
