package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payments-pipeline/config"
	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/internal/monitor"
	"payments-pipeline/pkg/apperror"
	"payments-pipeline/pkg/resilience"

	"github.com/rs/zerolog"
)

// Event redelivery backoff.
const (
	redeliveryBase   = 500 * time.Millisecond
	redeliveryCap    = 5 * time.Second
	redeliveryJitter = 0.25
)

// OutboxWorker drains PaymentRequested events: it claims the payment
// optimistically, confirms it with the rail provider and finalizes both the
// payment and the event. Safe to run in multiple replicas; the version
// check arbitrates.
type OutboxWorker struct {
	paymentRepo ports.PaymentRepository
	outboxRepo  ports.OutboxRepository
	transactor  ports.DBTransactor
	driver      ports.ProviderDriver
	metrics     *monitor.Metrics
	cfg         config.WorkerConfig
	log         zerolog.Logger
}

// NewOutboxWorker creates a new OutboxWorker.
func NewOutboxWorker(
	paymentRepo ports.PaymentRepository,
	outboxRepo ports.OutboxRepository,
	transactor ports.DBTransactor,
	driver ports.ProviderDriver,
	metrics *monitor.Metrics,
	cfg config.WorkerConfig,
	log zerolog.Logger,
) *OutboxWorker {
	return &OutboxWorker{
		paymentRepo: paymentRepo,
		outboxRepo:  outboxRepo,
		transactor:  transactor,
		driver:      driver,
		metrics:     metrics,
		cfg:         cfg,
		log:         log,
	}
}

// Run polls until the context is cancelled. Iteration errors are logged
// and swallowed; the loop never dies.
func (w *OutboxWorker) Run(ctx context.Context) {
	w.log.Info().
		Int("batch_size", w.cfg.BatchSize).
		Dur("poll_interval", w.cfg.PollInterval).
		Msg("outbox worker started")

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("outbox worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce samples backlog gauges and processes one batch.
func (w *OutboxWorker) runOnce(ctx context.Context) {
	if size, err := w.outboxRepo.BacklogSize(ctx); err == nil {
		w.metrics.SetGauge(monitor.GaugeOutboxBacklog, float64(size))
	}
	if lag, err := w.outboxRepo.OldestPendingLag(ctx); err == nil {
		w.metrics.SetGauge(monitor.GaugeOutboxOldestLagSec, lag.Seconds())
	}

	events, err := w.outboxRepo.FetchPendingRequested(ctx, w.cfg.BatchSize)
	if err != nil {
		w.log.Error().Err(err).Msg("failed to fetch pending events")
		return
	}

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.log.Error().Err(err).
				Str("event_id", event.EventID.String()).
				Str("payment_id", event.AggregateID.String()).
				Msg("event processing failed")
		}
	}
}

// processEvent runs the claim-confirm-finalize sequence for one event.
func (w *OutboxWorker) processEvent(ctx context.Context, event domain.OutboxEvent) error {
	traceID, _ := event.Payload["trace_id"].(string)

	payment, err := w.paymentRepo.GetByID(ctx, event.AggregateID)
	if err != nil {
		return fmt.Errorf("load payment: %w", err)
	}

	claimed, err := w.claim(ctx, event, payment)
	if err != nil || !claimed {
		return err
	}

	resp, execErr := w.driver.Execute(ctx, payment)
	if execErr != nil {
		return w.finalizeFailure(ctx, event, payment, execErr, traceID)
	}
	return w.finalizeSuccess(ctx, event, payment, resp, traceID)
}

// claim settles stale events and performs the optimistic claim. It reports
// whether this worker owns the payment now.
func (w *OutboxWorker) claim(ctx context.Context, event domain.OutboxEvent, payment *domain.Payment) (bool, error) {
	dbTx, err := w.transactor.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin claim tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if payment == nil {
		// Event without a payment row cannot be processed.
		if err := w.outboxRepo.MarkFailed(ctx, dbTx, event.EventID, event.Attempts+1); err != nil {
			return false, err
		}
		w.metrics.Inc(monitor.CounterEventsFailed)
		return false, dbTx.Commit(ctx)
	}

	if !payment.Claimable() {
		// Another worker or the review workflow already moved it on.
		if err := w.outboxRepo.MarkSent(ctx, dbTx, event.EventID); err != nil {
			return false, err
		}
		return false, dbTx.Commit(ctx)
	}

	won, err := w.paymentRepo.ClaimProcessing(ctx, dbTx, payment.PaymentID, payment.Version)
	if err != nil {
		return false, fmt.Errorf("claim payment: %w", err)
	}
	if !won {
		if err := w.outboxRepo.MarkSent(ctx, dbTx, event.EventID); err != nil {
			return false, err
		}
		return false, dbTx.Commit(ctx)
	}

	return true, dbTx.Commit(ctx)
}

// finalizeSuccess settles the payment according to the provider's answer.
func (w *OutboxWorker) finalizeSuccess(ctx context.Context, event domain.OutboxEvent, payment *domain.Payment, resp *ports.ProviderResponse, traceID string) error {
	dbTx, err := w.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin finalize tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	confirmed := resp.Confirmed && !resp.PartialFailure

	if confirmed {
		if err := w.paymentRepo.MarkConfirmed(ctx, dbTx, payment); err != nil {
			return err
		}
		payload := domain.ConfirmedPayload(payment.PaymentID, payment.MerchantID, resp.Provider, resp.ProviderReference)
		if err := w.outboxRepo.Add(ctx, dbTx, payment.PaymentID, domain.EventPaymentConfirmed, payload); err != nil {
			return err
		}
	} else {
		if err := w.paymentRepo.MarkFailed(ctx, dbTx, payment, domain.FailureProviderPartialFailure); err != nil {
			return err
		}
		payload := domain.FailedPayload(payment.PaymentID, payment.MerchantID, resp.Provider,
			string(apperror.CategoryUnexpected), domain.FailureProviderPartialFailure)
		if err := w.outboxRepo.Add(ctx, dbTx, payment.PaymentID, domain.EventPaymentFailed, payload); err != nil {
			return err
		}
	}

	if err := w.outboxRepo.MarkSent(ctx, dbTx, event.EventID); err != nil {
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit finalize tx: %w", err)
	}

	w.metrics.Inc(monitor.CounterEventsDispatched)
	w.log.Info().
		Str("payment_id", payment.PaymentID.String()).
		Str("provider", resp.Provider).
		Bool("confirmed", confirmed).
		Bool("duplicate", resp.Duplicate).
		Str("trace_id", traceID).
		Msg("payment settled")
	return nil
}

// finalizeFailure reschedules transient failures with backoff and settles
// everything else (and exhausted retries) as FAILED.
func (w *OutboxWorker) finalizeFailure(ctx context.Context, event domain.OutboxEvent, payment *domain.Payment, execErr error, traceID string) error {
	attempts := event.Attempts + 1
	category, reason := classify(execErr)
	transient := category == apperror.CategoryProviderTimeout ||
		category == apperror.CategoryProvider5xx ||
		errors.Is(execErr, resilience.ErrCircuitOpen)

	dbTx, err := w.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin finalize tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if transient && attempts < w.cfg.MaxEventAttempts {
		// The payment stays PROCESSING; the redelivery re-claims it on
		// version alone.
		delay := resilience.ExponentialBackoff(attempts, redeliveryBase, redeliveryCap, redeliveryJitter)
		if err := w.outboxRepo.Reschedule(ctx, dbTx, event.EventID, attempts, time.Now().UTC().Add(delay)); err != nil {
			return err
		}
		if err := dbTx.Commit(ctx); err != nil {
			return fmt.Errorf("commit finalize tx: %w", err)
		}

		w.log.Warn().
			Str("payment_id", payment.PaymentID.String()).
			Str("category", string(category)).
			Int("attempts", attempts).
			Dur("retry_in", delay).
			Str("trace_id", traceID).
			Msg("provider confirm failed, rescheduled")
		return nil
	}

	provider := domain.ProviderNameFor(payment.Method)
	if category == apperror.CategoryUnexpected {
		provider = domain.ProviderUnknown
	}

	if err := w.paymentRepo.MarkFailed(ctx, dbTx, payment, reason); err != nil {
		return err
	}
	payload := domain.FailedPayload(payment.PaymentID, payment.MerchantID, provider, string(category), reason)
	if err := w.outboxRepo.Add(ctx, dbTx, payment.PaymentID, domain.EventPaymentFailed, payload); err != nil {
		return err
	}
	if err := w.outboxRepo.MarkFailed(ctx, dbTx, event.EventID, attempts); err != nil {
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit finalize tx: %w", err)
	}

	w.metrics.Inc(monitor.CounterEventsFailed)
	w.log.Error().
		Str("payment_id", payment.PaymentID.String()).
		Str("category", string(category)).
		Int("attempts", attempts).
		Str("trace_id", traceID).
		Msg("payment settlement failed")
	return nil
}

// classify maps an execution error to its event category and failure
// reason.
func classify(err error) (apperror.Category, string) {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return apperror.CategoryProvider5xx, "circuit_open"
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Category, string(appErr.Category)
	}
	return apperror.CategoryUnexpected, domain.FailureUnexpected
}
