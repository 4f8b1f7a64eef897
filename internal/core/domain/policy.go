package domain

import "github.com/shopspring/decimal"

// LimitsPolicy is the per-rail limits configuration, keyed by rail.
// Externally seeded; cached as JSON in Redis with a short TTL.
type LimitsPolicy struct {
	Rail                  PaymentMethod   `json:"rail"`
	MinAmount             decimal.Decimal `json:"min_amount"`
	MaxAmount             decimal.Decimal `json:"max_amount"`
	DailyLimitAmount      decimal.Decimal `json:"daily_limit_amount"`
	VelocityLimitCount    int             `json:"velocity_limit_count"`
	VelocityWindowSeconds int             `json:"velocity_window_seconds"`
}
