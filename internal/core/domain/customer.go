package domain

import "time"

// KycLevel is the verification tier a customer has completed.
type KycLevel string

const (
	KycNone  KycLevel = "NONE"
	KycBasic KycLevel = "BASIC"
	KycFull  KycLevel = "FULL"
)

// KycRank orders KYC levels: NONE < BASIC < FULL. Unknown levels rank lowest.
func KycRank(level KycLevel) int {
	switch level {
	case KycBasic:
		return 1
	case KycFull:
		return 2
	}
	return 0
}

// CustomerStatus gates whether a customer may transact at all.
type CustomerStatus string

const (
	CustomerActive    CustomerStatus = "ACTIVE"
	CustomerSuspended CustomerStatus = "SUSPENDED"
)

// Customer is externally seeded and immutable within the pipeline.
type Customer struct {
	CustomerID string         `json:"customer_id"`
	KycLevel   KycLevel       `json:"kyc_level"`
	Status     CustomerStatus `json:"status"`
	CreatedAt  *time.Time     `json:"created_at,omitempty"`
}

// IsNew reports whether the customer was created within the last seven days.
// A missing created_at is treated as new.
func (c *Customer) IsNew(now time.Time) bool {
	if c.CreatedAt == nil {
		return true
	}
	return now.Sub(*c.CreatedAt) < 7*24*time.Hour
}
