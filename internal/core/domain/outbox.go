package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType discriminates outbox event payloads.
type EventType string

const (
	EventPaymentRequested      EventType = "PaymentRequested"
	EventPaymentConfirmed      EventType = "PaymentConfirmed"
	EventPaymentFailed         EventType = "PaymentFailed"
	EventPaymentReviewRequired EventType = "PaymentReviewRequired"
)

// OutboxStatus is the publication state of an event row.
type OutboxStatus string

const (
	OutboxPending OutboxStatus = "PENDING"
	OutboxSent    OutboxStatus = "SENT"
	OutboxFailed  OutboxStatus = "FAILED"
)

// OutboxEvent is written in the same transaction as the payment state it
// describes and drained asynchronously. Rows are never deleted; SENT and
// FAILED events remain as an audit log.
type OutboxEvent struct {
	EventID       uuid.UUID      `json:"event_id"`
	AggregateID   uuid.UUID      `json:"aggregate_id"`
	EventType     EventType      `json:"event_type"`
	Payload       map[string]any `json:"payload"`
	Status        OutboxStatus   `json:"status"`
	Attempts      int            `json:"attempts"`
	CreatedAt     time.Time      `json:"created_at"`
	NextAttemptAt time.Time      `json:"next_attempt_at"`
}

// PaymentRequestedPayload builds the payload for a PaymentRequested event.
// TraceID links downstream worker spans back to the admission request.
func PaymentRequestedPayload(paymentID uuid.UUID, merchantID, traceID string) map[string]any {
	return map[string]any{
		"payment_id":  paymentID.String(),
		"merchant_id": merchantID,
		"trace_id":    traceID,
	}
}

// ReviewRequiredPayload builds the payload for a PaymentReviewRequired event.
func ReviewRequiredPayload(paymentID uuid.UUID, merchantID string) map[string]any {
	return map[string]any{
		"payment_id":  paymentID.String(),
		"merchant_id": merchantID,
		"reason":      ReviewReasonRiskOrAml,
	}
}

// ConfirmedPayload builds the payload for a PaymentConfirmed event.
func ConfirmedPayload(paymentID uuid.UUID, merchantID, provider, providerReference string) map[string]any {
	return map[string]any{
		"payment_id":         paymentID.String(),
		"merchant_id":        merchantID,
		"provider":           provider,
		"provider_reference": providerReference,
	}
}

// FailedPayload builds the payload for a PaymentFailed event.
func FailedPayload(paymentID uuid.UUID, merchantID, provider, errorCategory, reason string) map[string]any {
	return map[string]any{
		"payment_id":     paymentID.String(),
		"merchant_id":    merchantID,
		"provider":       provider,
		"error_category": errorCategory,
		"reason":         reason,
	}
}
