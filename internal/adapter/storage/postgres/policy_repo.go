package postgres

import (
	"context"
	"errors"
	"fmt"

	"payments-pipeline/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PolicyRepo implements ports.PolicyRepository over the externally seeded
// limits_policies table.
type PolicyRepo struct {
	pool Pool
}

// NewPolicyRepo creates a new PolicyRepo.
func NewPolicyRepo(pool Pool) *PolicyRepo {
	return &PolicyRepo{pool: pool}
}

// GetByRail fetches the limits policy for a rail. Returns nil, nil when no
// policy is configured.
func (r *PolicyRepo) GetByRail(ctx context.Context, rail domain.PaymentMethod) (*domain.LimitsPolicy, error) {
	query := `SELECT rail, min_amount::text, max_amount::text, daily_limit_amount::text,
		velocity_limit_count, velocity_window_seconds
		FROM limits_policies WHERE rail = $1`

	p := &domain.LimitsPolicy{}
	var rawMin, rawMax, rawDaily string
	err := r.pool.QueryRow(ctx, query, rail).Scan(
		&p.Rail, &rawMin, &rawMax, &rawDaily,
		&p.VelocityLimitCount, &p.VelocityWindowSeconds,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get limits policy: %w", err)
	}

	if p.MinAmount, err = decimal.NewFromString(rawMin); err != nil {
		return nil, fmt.Errorf("parse policy min amount: %w", err)
	}
	if p.MaxAmount, err = decimal.NewFromString(rawMax); err != nil {
		return nil, fmt.Errorf("parse policy max amount: %w", err)
	}
	if p.DailyLimitAmount, err = decimal.NewFromString(rawDaily); err != nil {
		return nil, fmt.Errorf("parse policy daily limit: %w", err)
	}
	return p, nil
}
