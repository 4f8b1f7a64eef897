package provider

import (
	"context"
	"errors"
	"time"

	"payments-pipeline/config"
	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/internal/monitor"
	"payments-pipeline/pkg/apperror"
	"payments-pipeline/pkg/resilience"

	"github.com/rs/zerolog"
)

// Retry harness for transient provider failures.
var confirmRetry = resilience.RetryConfig{
	MaxAttempts: 3,
	Base:        50 * time.Millisecond,
	Cap:         2 * time.Second,
	Jitter:      0.25,
}

// Driver implements ports.ProviderDriver. Each provider gets its own
// circuit breaker and bulkhead compartment; retries stay inside the
// compartment so a retrying payment never holds more than one slot.
type Driver struct {
	client   ports.ProviderClient
	bulkhead *resilience.Bulkhead
	breakers map[string]*resilience.CircuitBreaker
	metrics  *monitor.Metrics
	log      zerolog.Logger
}

// NewDriver creates a provider driver with per-provider breakers.
func NewDriver(client ports.ProviderClient, cfg config.ProviderConfig, metrics *monitor.Metrics, log zerolog.Logger) *Driver {
	breakers := make(map[string]*resilience.CircuitBreaker)
	for _, name := range domain.ProviderNames() {
		breakers[name] = resilience.NewCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerRecovery)
	}
	return &Driver{
		client:   client,
		bulkhead: resilience.NewBulkhead(cfg.BulkheadLimit),
		breakers: breakers,
		metrics:  metrics,
		log:      log,
	}
}

// Execute confirms the payment against its rail's provider. The breaker is
// consulted before a bulkhead slot is taken, and it records one outcome per
// execution: a failure when any error leaves the retry harness, a success
// otherwise.
func (d *Driver) Execute(ctx context.Context, payment *domain.Payment) (*ports.ProviderResponse, error) {
	strategy := domain.StrategyFor(payment.Method)
	breaker := d.breakers[strategy.ProviderName]

	if err := breaker.AllowCall(); err != nil {
		return nil, err
	}

	if err := d.bulkhead.Acquire(ctx, strategy.ProviderName); err != nil {
		return nil, apperror.Internal(err)
	}
	defer d.bulkhead.Release(strategy.ProviderName)

	req := ports.ProviderRequest{
		PaymentID:  payment.PaymentID,
		MerchantID: payment.MerchantID,
		Amount:     payment.Amount,
		Currency:   payment.Currency,
		Method:     payment.Method,
	}

	start := time.Now()
	var resp *ports.ProviderResponse
	err := resilience.Retry(ctx, confirmRetry, isTransient, func() error {
		r, err := d.client.Confirm(ctx, strategy, req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})

	latency := time.Since(start)
	d.metrics.SetGauge(monitor.GaugeProviderLatencyMsec, float64(latency.Milliseconds()))

	if err != nil {
		breaker.OnFailure()
		d.log.Warn().Err(err).
			Str("payment_id", payment.PaymentID.String()).
			Str("provider", strategy.ProviderName).
			Dur("latency", latency).
			Msg("provider confirm failed")
		return nil, err
	}

	breaker.OnSuccess()
	d.log.Debug().
		Str("payment_id", payment.PaymentID.String()).
		Str("provider", resp.Provider).
		Str("provider_reference", resp.ProviderReference).
		Dur("latency", latency).
		Msg("provider confirm completed")
	return resp, nil
}

// isTransient reports whether a confirm attempt is worth retrying within
// one execution: timeouts and provider 5xx.
func isTransient(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Category == apperror.CategoryProviderTimeout ||
			appErr.Category == apperror.CategoryProvider5xx
	}
	return false
}
