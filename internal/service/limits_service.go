package service

import (
	"context"
	"fmt"
	"time"

	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LimitsEvaluation carries the passing evaluation's context forward: the
// policy feeds the risk and AML checks and the velocity count feeds the
// spike rule.
type LimitsEvaluation struct {
	Policy          *domain.LimitsPolicy
	VelocityCount   int
	DailyTotalAfter decimal.Decimal
}

// LimitsService enforces per-rail amount bounds, the daily spend cap and
// the velocity cap. The Redis layer is an accelerator only: on any cache
// error the authoritative Postgres aggregates decide.
type LimitsService struct {
	cache       ports.LimitsCache
	policyRepo  ports.PolicyRepository
	paymentRepo ports.PaymentRepository
	policyTTL   time.Duration
	log         zerolog.Logger
}

// NewLimitsService creates a new LimitsService.
func NewLimitsService(
	cache ports.LimitsCache,
	policyRepo ports.PolicyRepository,
	paymentRepo ports.PaymentRepository,
	policyTTL time.Duration,
	log zerolog.Logger,
) *LimitsService {
	return &LimitsService{
		cache:       cache,
		policyRepo:  policyRepo,
		paymentRepo: paymentRepo,
		policyTTL:   policyTTL,
		log:         log,
	}
}

// Evaluate runs the limits checks in order: policy lookup, min/max bounds,
// daily cap, velocity cap. Each passing cap check writes its counter back
// to the cache immediately, so a request rejected by a later gate has
// already consumed budget. Counter writes are best-effort: a failure only
// degrades the next check to its DB fallback.
func (s *LimitsService) Evaluate(ctx context.Context, customerID string, rail domain.PaymentMethod, amount decimal.Decimal) (*LimitsEvaluation, error) {
	policy, err := s.loadPolicy(ctx, rail)
	if err != nil {
		return nil, err
	}

	if amount.LessThan(policy.MinAmount) {
		return nil, apperror.LimitExceeded(fmt.Sprintf("Amount below minimum %s for %s", policy.MinAmount.StringFixed(2), rail))
	}
	if amount.GreaterThan(policy.MaxAmount) {
		return nil, apperror.LimitExceeded(fmt.Sprintf("Amount above maximum %s for %s", policy.MaxAmount.StringFixed(2), rail))
	}

	now := time.Now().UTC()
	dailyTotal, err := s.dailySpent(ctx, customerID, rail, now)
	if err != nil {
		return nil, err
	}
	totalAfter := dailyTotal.Add(amount)
	if totalAfter.GreaterThan(policy.DailyLimitAmount) {
		return nil, apperror.LimitExceeded(fmt.Sprintf("Daily limit %s exceeded for %s", policy.DailyLimitAmount.StringFixed(2), rail))
	}

	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	if err := s.cache.SetDailyCents(ctx, now.Format("20060102"), customerID, rail,
		domain.AmountCents(totalAfter), endOfDay.Sub(now)+time.Second); err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID).Msg("failed to update daily spend counter")
	}

	eval := &LimitsEvaluation{Policy: policy, DailyTotalAfter: totalAfter}

	if policy.VelocityLimitCount > 0 {
		window := time.Duration(policy.VelocityWindowSeconds) * time.Second
		count, err := s.velocityCount(ctx, customerID, rail, window, now)
		if err != nil {
			return nil, err
		}
		if count+1 > policy.VelocityLimitCount {
			return nil, apperror.LimitExceeded(fmt.Sprintf("Velocity limit %d exceeded for %s", policy.VelocityLimitCount, rail))
		}
		if err := s.cache.VelocityAdd(ctx, customerID, rail, window); err != nil {
			s.log.Warn().Err(err).Str("customer_id", customerID).Msg("failed to record velocity admission")
		}
		eval.VelocityCount = count + 1
	}

	return eval, nil
}

// loadPolicy reads the rail policy through the cache, refilling it from the
// repository on miss.
func (s *LimitsService) loadPolicy(ctx context.Context, rail domain.PaymentMethod) (*domain.LimitsPolicy, error) {
	policy, err := s.cache.GetPolicy(ctx, rail)
	if err != nil {
		s.log.Warn().Err(err).Str("rail", string(rail)).Msg("policy cache unavailable, reading from db")
	}
	if policy != nil {
		return policy, nil
	}

	policy, err = s.policyRepo.GetByRail(ctx, rail)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load limits policy: %w", err))
	}
	if policy == nil {
		return nil, apperror.Validation(fmt.Sprintf("No limits policy configured for %s", rail))
	}

	if err := s.cache.SetPolicy(ctx, policy, s.policyTTL); err != nil {
		s.log.Warn().Err(err).Str("rail", string(rail)).Msg("failed to cache limits policy")
	}
	return policy, nil
}

// dailySpent returns the customer's spend so far today on the rail, from
// the cache counter or the authoritative aggregate.
func (s *LimitsService) dailySpent(ctx context.Context, customerID string, rail domain.PaymentMethod, now time.Time) (decimal.Decimal, error) {
	dateKey := now.Format("20060102")

	cents, found, err := s.cache.GetDailyCents(ctx, dateKey, customerID, rail)
	if err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID).Msg("daily counter unavailable, reading from db")
	} else if found {
		return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)), nil
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sum, err := s.paymentRepo.SumOutgoingSince(ctx, customerID, rail, startOfDay)
	if err != nil {
		return decimal.Zero, apperror.Internal(fmt.Errorf("daily spend aggregate: %w", err))
	}
	return sum, nil
}

// velocityCount returns the number of admissions in the sliding window,
// from the cache sorted set or the authoritative aggregate.
func (s *LimitsService) velocityCount(ctx context.Context, customerID string, rail domain.PaymentMethod, window time.Duration, now time.Time) (int, error) {
	count, err := s.cache.VelocityCount(ctx, customerID, rail, window)
	if err == nil {
		return count, nil
	}
	s.log.Warn().Err(err).Str("customer_id", customerID).Msg("velocity window unavailable, reading from db")

	count, err = s.paymentRepo.CountOutgoingSince(ctx, customerID, rail, now.Add(-window))
	if err != nil {
		return 0, apperror.Internal(fmt.Errorf("velocity aggregate: %w", err))
	}
	return count, nil
}
