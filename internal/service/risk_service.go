package service

import (
	"context"
	"fmt"
	"time"

	"payments-pipeline/config"
	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Rule weights. The score is additive and clamped to 100.
const (
	weightAmountNearMax     = 25
	weightVelocitySpike     = 20
	weightRepeatedFailures  = 25
	weightFewFailures       = 10
	weightNewCustomerLowKyc = 20
	weightNewDestination    = 15

	failureLookback       = 24 * time.Hour
	repeatedFailuresCount = 3
)

var (
	nearMaxRatio = decimal.RequireFromString("0.9")
	spikeRatio   = 0.8
)

// RiskInput is the context a scoring pass runs against.
type RiskInput struct {
	Customer      *domain.Customer
	CustomerID    string
	Amount        decimal.Decimal
	Destination   *string
	Policy        *domain.LimitsPolicy
	VelocityCount int
}

// RiskAssessment is the outcome of a scoring pass.
type RiskAssessment struct {
	Score    int
	Decision domain.Decision
}

// RiskService scores admissions against a fixed rule set and maps the score
// to a decision via the configured thresholds.
type RiskService struct {
	paymentRepo ports.PaymentRepository
	cfg         config.RiskConfig
	log         zerolog.Logger
}

// NewRiskService creates a new RiskService.
func NewRiskService(paymentRepo ports.PaymentRepository, cfg config.RiskConfig, log zerolog.Logger) *RiskService {
	return &RiskService{
		paymentRepo: paymentRepo,
		cfg:         cfg,
		log:         log,
	}
}

// Score runs all rules and returns the clamped score with its decision.
func (s *RiskService) Score(ctx context.Context, in RiskInput) (*RiskAssessment, error) {
	now := time.Now().UTC()
	score := 0

	// Amount close to the rail's per-transaction ceiling.
	if in.Amount.GreaterThanOrEqual(in.Policy.MaxAmount.Mul(nearMaxRatio)) {
		score += weightAmountNearMax
	}

	// Velocity approaching the cap.
	if in.Policy.VelocityLimitCount > 0 {
		ratio := float64(in.VelocityCount) / float64(in.Policy.VelocityLimitCount)
		if ratio >= spikeRatio {
			score += weightVelocitySpike
		}
	}

	// Recent failed payments for this customer.
	failures, err := s.paymentRepo.CountFailuresSince(ctx, in.CustomerID, now.Add(-failureLookback))
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("count recent failures: %w", err))
	}
	switch {
	case failures >= repeatedFailuresCount:
		score += weightRepeatedFailures
	case failures >= 1:
		score += weightFewFailures
	}

	// New customer without full verification.
	if in.Customer.IsNew(now) && domain.KycRank(in.Customer.KycLevel) < domain.KycRank(domain.KycFull) {
		score += weightNewCustomerLowKyc
	}

	// First payment to this destination.
	if in.Destination != nil && *in.Destination != "" {
		seen, err := s.paymentRepo.DestinationSeen(ctx, in.CustomerID, in.Destination)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("check destination history: %w", err))
		}
		if !seen {
			score += weightNewDestination
		}
	}

	if score > 100 {
		score = 100
	}

	decision := domain.DecisionAllow
	switch {
	case score >= s.cfg.BlockThreshold:
		decision = domain.DecisionBlock
	case score >= s.cfg.ReviewThreshold:
		decision = domain.DecisionReview
	}

	return &RiskAssessment{Score: score, Decision: decision}, nil
}
