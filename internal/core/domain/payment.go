package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the settlement rail a payment rides on.
type PaymentMethod string

const (
	MethodPIX    PaymentMethod = "PIX"
	MethodBoleto PaymentMethod = "BOLETO"
	MethodTED    PaymentMethod = "TED"
	MethodCard   PaymentMethod = "CARD"
)

// ParseMethod validates a wire-format method string.
func ParseMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case MethodPIX, MethodBoleto, MethodTED, MethodCard:
		return PaymentMethod(s), true
	}
	return "", false
}

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	StatusReceived   PaymentStatus = "RECEIVED"
	StatusValidated  PaymentStatus = "VALIDATED"
	StatusInReview   PaymentStatus = "IN_REVIEW"
	StatusProcessing PaymentStatus = "PROCESSING"
	StatusConfirmed  PaymentStatus = "CONFIRMED"
	StatusFailed     PaymentStatus = "FAILED"
	StatusBlocked    PaymentStatus = "BLOCKED"
)

// Failure reasons recorded in Payment.LastError.
const (
	FailureManualReviewRejected   = "manual_review_rejected"
	FailureProviderPartialFailure = "provider_partial_failure"
	FailureUnexpected             = "unexpected"
)

// Payment is the aggregate root of the pipeline. Version starts at 1 and
// strictly increases on every state-changing update; concurrent updaters
// must observe the previous version.
type Payment struct {
	PaymentID      uuid.UUID       `json:"payment_id"`
	MerchantID     string          `json:"merchant_id"`
	CustomerID     string          `json:"customer_id"`
	AccountID      string          `json:"account_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Method         PaymentMethod   `json:"method"`
	Destination    *string         `json:"destination,omitempty"`
	Status         PaymentStatus   `json:"status"`
	IdempotencyKey string          `json:"idempotency_key"`
	RiskScore      int             `json:"risk_score"`
	RiskDecision   Decision        `json:"risk_decision"`
	AmlDecision    Decision        `json:"aml_decision"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
	LastError      *string         `json:"last_error,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int64           `json:"version"`
}

// IsTerminal reports whether no further pipeline transitions apply.
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case StatusConfirmed, StatusFailed, StatusBlocked:
		return true
	}
	return false
}

// Claimable reports whether an outbox worker may attempt the optimistic
// claim: RECEIVED on first delivery, PROCESSING when a transient failure
// left the payment mid-settlement and the event was redelivered.
func (p *Payment) Claimable() bool {
	return p.Status == StatusReceived || p.Status == StatusProcessing
}

// AmountCents returns the integer-cents shadow of the amount, used by the
// daily-limit cache counter.
func AmountCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}
