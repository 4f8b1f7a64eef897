package service

import (
	"context"
	"fmt"

	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/internal/monitor"
	"payments-pipeline/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReviewServiceImpl implements ports.ReviewService. Approving re-enters the
// payment into the pipeline; rejecting settles it terminally. Both outcomes
// shrink the review queue, so the gauge is resampled after each decision.
type ReviewServiceImpl struct {
	paymentRepo ports.PaymentRepository
	outboxRepo  ports.OutboxRepository
	transactor  ports.DBTransactor
	metrics     *monitor.Metrics
	log         zerolog.Logger
}

// NewReviewService creates a new ReviewServiceImpl.
func NewReviewService(
	paymentRepo ports.PaymentRepository,
	outboxRepo ports.OutboxRepository,
	transactor ports.DBTransactor,
	metrics *monitor.Metrics,
	log zerolog.Logger,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		paymentRepo: paymentRepo,
		outboxRepo:  outboxRepo,
		transactor:  transactor,
		metrics:     metrics,
		log:         log,
	}
}

// Approve moves an IN_REVIEW payment back to RECEIVED and enqueues a fresh
// PaymentRequested event for the worker.
func (s *ReviewServiceImpl) Approve(ctx context.Context, paymentID uuid.UUID, traceID string) (*ports.AdmissionResponse, error) {
	payment, err := s.loadInReview(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.paymentRepo.UpdateStatus(ctx, dbTx, paymentID, domain.StatusReceived, nil); err != nil {
		return nil, apperror.Internal(fmt.Errorf("approve payment: %w", err))
	}
	payload := domain.PaymentRequestedPayload(paymentID, payment.MerchantID, traceID)
	if err := s.outboxRepo.Add(ctx, dbTx, paymentID, domain.EventPaymentRequested, payload); err != nil {
		return nil, apperror.Internal(fmt.Errorf("enqueue requested event: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.Internal(fmt.Errorf("commit tx: %w", err))
	}

	s.sampleReviewQueue(ctx)

	s.log.Info().
		Str("payment_id", paymentID.String()).
		Str("trace_id", traceID).
		Msg("review approved, payment re-queued")

	return reviewResponse(payment, domain.StatusReceived, traceID), nil
}

// Reject settles an IN_REVIEW payment as BLOCKED.
func (s *ReviewServiceImpl) Reject(ctx context.Context, paymentID uuid.UUID, traceID string) (*ports.AdmissionResponse, error) {
	payment, err := s.loadInReview(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	reason := domain.FailureManualReviewRejected
	if err := s.paymentRepo.UpdateStatus(ctx, dbTx, paymentID, domain.StatusBlocked, &reason); err != nil {
		return nil, apperror.Internal(fmt.Errorf("reject payment: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.Internal(fmt.Errorf("commit tx: %w", err))
	}

	s.sampleReviewQueue(ctx)

	s.log.Info().
		Str("payment_id", paymentID.String()).
		Str("trace_id", traceID).
		Msg("review rejected, payment blocked")

	return reviewResponse(payment, domain.StatusBlocked, traceID), nil
}

// sampleReviewQueue refreshes the review queue gauge after a decision
// removed a payment from the queue. Best-effort only.
func (s *ReviewServiceImpl) sampleReviewQueue(ctx context.Context) {
	size, err := s.paymentRepo.CountInReview(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to sample review queue size")
		return
	}
	s.metrics.SetGauge(monitor.GaugeReviewQueueSize, float64(size))
}

// loadInReview fetches the payment and verifies it is awaiting review.
func (s *ReviewServiceImpl) loadInReview(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load payment: %w", err))
	}
	if payment == nil {
		return nil, apperror.Validation("Payment not found")
	}
	if payment.Status != domain.StatusInReview {
		return nil, apperror.Validation(fmt.Sprintf("Payment is %s, not IN_REVIEW", payment.Status))
	}
	return payment, nil
}

func reviewResponse(payment *domain.Payment, status domain.PaymentStatus, traceID string) *ports.AdmissionResponse {
	return &ports.AdmissionResponse{
		PaymentID:    payment.PaymentID,
		Status:       status,
		TraceID:      traceID,
		RiskDecision: payment.RiskDecision,
		AmlDecision:  payment.AmlDecision,
	}
}
