package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord stores the HTTP-shaped response snapshot of the original
// accepted request. (merchant_id, idempotency_key) is unique.
type IdempotencyRecord struct {
	MerchantID      string    `json:"merchant_id"`
	IdempotencyKey  string    `json:"idempotency_key"`
	PaymentID       uuid.UUID `json:"payment_id"`
	StatusCode      int       `json:"status_code"`
	ResponsePayload []byte    `json:"response_payload"`
	CreatedAt       time.Time `json:"created_at"`
}

// ScopedIdempotencyKey builds the cache lock key, scoped per merchant.
func ScopedIdempotencyKey(merchantID, idempotencyKey string) string {
	return merchantID + ":" + idempotencyKey
}
