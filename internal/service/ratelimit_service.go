package service

import (
	"context"
	"time"

	"payments-pipeline/config"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/pkg/apperror"

	"github.com/rs/zerolog"
)

// Rate limit dimensions, checked in order. The first tripped dimension is
// the one reported.
const (
	DimensionMerchant = "merchant"
	DimensionCustomer = "customer"
	DimensionAccount  = "account"
)

// RateLimitService enforces fixed-window admission rate limits across the
// merchant, customer and account dimensions.
type RateLimitService struct {
	counter ports.RateCounter
	cfg     config.RateLimitConfig
	log     zerolog.Logger
}

// NewRateLimitService creates a new RateLimitService.
func NewRateLimitService(counter ports.RateCounter, cfg config.RateLimitConfig, log zerolog.Logger) *RateLimitService {
	return &RateLimitService{
		counter: counter,
		cfg:     cfg,
		log:     log,
	}
}

// Check increments all three dimension counters for the current window and
// returns a rate_limited error naming the first dimension over its limit.
// Counter failures fail open: rate limiting is protective, not correctness.
func (s *RateLimitService) Check(ctx context.Context, merchantID, customerID, accountID string) error {
	window := s.cfg.Window
	bucket := time.Now().Unix() / int64(window.Seconds())

	checks := []struct {
		dimension string
		value     string
		limit     int
	}{
		{DimensionMerchant, merchantID, s.cfg.MerchantLimit},
		{DimensionCustomer, customerID, s.cfg.CustomerLimit},
		{DimensionAccount, accountID, s.cfg.AccountLimit},
	}

	for _, c := range checks {
		count, err := s.counter.Incr(ctx, c.dimension, c.value, bucket, window)
		if err != nil {
			s.log.Warn().Err(err).Str("dimension", c.dimension).
				Msg("rate counter unavailable, failing open")
			continue
		}
		if count > int64(c.limit) {
			return apperror.RateLimited(c.dimension)
		}
	}
	return nil
}
