package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxIdempotencyKeyLen = 128
	maxIdentityLen       = 128
)

// ParseAmount validates the wire amount: a positive decimal with at most
// two fractional digits.
func ParseAmount(s string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	if !amount.IsPositive() {
		return decimal.Zero, false
	}
	if amount.Exponent() < -2 {
		return decimal.Zero, false
	}
	return amount, true
}

// ParseIdempotencyKey trims and bounds the Idempotency-Key header value.
func ParseIdempotencyKey(raw string) (string, bool) {
	key := strings.TrimSpace(raw)
	if key == "" || len(key) > maxIdempotencyKeyLen {
		return "", false
	}
	return key, true
}

// ParseIdentity trims and bounds an identity header value (merchant,
// customer or account id).
func ParseIdentity(raw string) (string, bool) {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > maxIdentityLen {
		return "", false
	}
	return id, true
}
