package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"payments-pipeline/config"
	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// structuringBandRatio defines the lower bound of the near-threshold band
// as a fraction of the rail's max amount.
var structuringBandRatio = decimal.RequireFromString("0.95")

// amlEntry is a parsed history record.
type amlEntry struct {
	at     time.Time
	rail   domain.PaymentMethod
	amount decimal.Decimal
}

// AmlService runs the anti-money-laundering checks in severity order:
// blocklist (BLOCK), aggregate volume (REVIEW), structuring (REVIEW).
// The first hit decides; later checks are skipped.
type AmlService struct {
	history     ports.AmlHistory
	paymentRepo ports.PaymentRepository
	cfg         config.AmlConfig
	blocklist   map[string]struct{}
	threshold   decimal.Decimal
	log         zerolog.Logger
}

// NewAmlService creates a new AmlService.
func NewAmlService(history ports.AmlHistory, paymentRepo ports.PaymentRepository, cfg config.AmlConfig, log zerolog.Logger) (*AmlService, error) {
	threshold, err := decimal.NewFromString(cfg.TotalThresholdAmount)
	if err != nil {
		return nil, fmt.Errorf("parse aml total threshold: %w", err)
	}
	return &AmlService{
		history:     history,
		paymentRepo: paymentRepo,
		cfg:         cfg,
		blocklist:   cfg.BlocklistSet(),
		threshold:   threshold,
		log:         log,
	}, nil
}

// Evaluate runs the checks for a prospective admission.
func (s *AmlService) Evaluate(ctx context.Context, customerID string, rail domain.PaymentMethod, amount decimal.Decimal, destination *string, policy *domain.LimitsPolicy) (domain.Decision, error) {
	if destination != nil {
		if _, blocked := s.blocklist[*destination]; blocked {
			return domain.DecisionBlock, nil
		}
	}

	now := time.Now().UTC()
	entries, histErr := s.history.Entries(ctx, customerID)
	if histErr != nil {
		s.log.Warn().Err(histErr).Str("customer_id", customerID).
			Msg("aml history unavailable, using db aggregates")
	}
	parsed := parseAmlEntries(entries)

	review, err := s.aggregateVolumeHit(ctx, customerID, rail, amount, parsed, histErr != nil, now)
	if err != nil {
		return "", err
	}
	if review {
		return domain.DecisionReview, nil
	}

	review, err = s.structuringHit(ctx, customerID, rail, amount, policy, parsed, histErr != nil, now)
	if err != nil {
		return "", err
	}
	if review {
		return domain.DecisionReview, nil
	}

	return domain.DecisionAllow, nil
}

// RecordOutgoing appends an admitted payment to the customer's history.
// Best-effort: a write failure degrades the next evaluation to its DB
// fallback.
func (s *AmlService) RecordOutgoing(ctx context.Context, customerID string, rail domain.PaymentMethod, amount decimal.Decimal) {
	if err := s.history.Record(ctx, customerID, rail, amount); err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID).Msg("failed to record aml history")
	}
}

// aggregateVolumeHit checks whether the rolling-window outgoing volume on
// this rail plus the current amount crosses the reporting threshold.
func (s *AmlService) aggregateVolumeHit(ctx context.Context, customerID string, rail domain.PaymentMethod, amount decimal.Decimal, entries []amlEntry, useDB bool, now time.Time) (bool, error) {
	since := now.Add(-s.cfg.TotalWindow)

	var total decimal.Decimal
	if useDB {
		sum, err := s.paymentRepo.SumOutgoingSince(ctx, customerID, rail, since)
		if err != nil {
			return false, apperror.Internal(fmt.Errorf("aml volume aggregate: %w", err))
		}
		total = sum
	} else {
		for _, e := range entries {
			if e.at.Before(since) || e.rail != rail {
				continue
			}
			total = total.Add(e.amount)
		}
	}

	return total.Add(amount).GreaterThan(s.threshold), nil
}

// structuringHit checks for repeated amounts just under the rail's max,
// a pattern of splitting one large transfer into several near-limit ones.
func (s *AmlService) structuringHit(ctx context.Context, customerID string, rail domain.PaymentMethod, amount decimal.Decimal, policy *domain.LimitsPolicy, entries []amlEntry, useDB bool, now time.Time) (bool, error) {
	low := policy.MaxAmount.Mul(structuringBandRatio)
	high := policy.MaxAmount
	since := now.Add(-s.cfg.StructuringWindow)

	inBand := func(a decimal.Decimal) bool {
		return a.GreaterThanOrEqual(low) && a.LessThanOrEqual(high)
	}

	var count int
	if useDB {
		c, err := s.paymentRepo.CountNearThresholdSince(ctx, customerID, rail, since, low, high)
		if err != nil {
			return false, apperror.Internal(fmt.Errorf("aml structuring aggregate: %w", err))
		}
		count = c
	} else {
		for _, e := range entries {
			if e.at.Before(since) || e.rail != rail {
				continue
			}
			if inBand(e.amount) {
				count++
			}
		}
	}

	if inBand(amount) {
		count++
	}
	return count >= s.cfg.StructuringCountThreshold, nil
}

// parseAmlEntries decodes "unixSeconds|rail|amount" records, skipping any
// it cannot parse.
func parseAmlEntries(raw []string) []amlEntry {
	entries := make([]amlEntry, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, "|", 3)
		if len(parts) != 3 {
			continue
		}
		ts, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			continue
		}
		amount, err := decimal.NewFromString(parts[2])
		if err != nil {
			continue
		}
		entries = append(entries, amlEntry{
			at:     time.Unix(ts, 0).UTC(),
			rail:   domain.PaymentMethod(parts[1]),
			amount: amount,
		})
	}
	return entries
}
