package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"payments-pipeline/config"
	"payments-pipeline/internal/adapter/storage/postgres"
	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/internal/monitor"
	"payments-pipeline/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pending-duplicate resolution: a duplicate that lost the admission lock
// polls briefly for the original's snapshot before giving up with a 409.
const (
	pendingPollAttempts = 5
	pendingPollInterval = 20 * time.Millisecond
)

// AdmissionServiceImpl implements ports.AdmissionService. It runs the gate
// sequence (idempotency, KYC, limits, rate limit, risk, AML) and persists
// the admitted payment, its outbox event and the response snapshot in one
// transaction.
type AdmissionServiceImpl struct {
	paymentRepo  ports.PaymentRepository
	outboxRepo   ports.OutboxRepository
	idempRepo    ports.IdempotencyRepository
	customerRepo ports.CustomerRepository
	transactor   ports.DBTransactor
	lock         ports.AdmissionLock
	kyc          *KycService
	limits       *LimitsService
	rateLimit    *RateLimitService
	risk         *RiskService
	aml          *AmlService
	metrics      *monitor.Metrics
	currencies   map[string]struct{}
	log          zerolog.Logger
}

// NewAdmissionService creates a new AdmissionServiceImpl.
func NewAdmissionService(
	paymentRepo ports.PaymentRepository,
	outboxRepo ports.OutboxRepository,
	idempRepo ports.IdempotencyRepository,
	customerRepo ports.CustomerRepository,
	transactor ports.DBTransactor,
	lock ports.AdmissionLock,
	kyc *KycService,
	limits *LimitsService,
	rateLimit *RateLimitService,
	risk *RiskService,
	aml *AmlService,
	metrics *monitor.Metrics,
	cfg config.AdmissionConfig,
	log zerolog.Logger,
) *AdmissionServiceImpl {
	return &AdmissionServiceImpl{
		paymentRepo:  paymentRepo,
		outboxRepo:   outboxRepo,
		idempRepo:    idempRepo,
		customerRepo: customerRepo,
		transactor:   transactor,
		lock:         lock,
		kyc:          kyc,
		limits:       limits,
		rateLimit:    rateLimit,
		risk:         risk,
		aml:          aml,
		metrics:      metrics,
		currencies:   cfg.SupportedCurrencySet(),
		log:          log,
	}
}

// Create admits a payment. Duplicates of an already-admitted request replay
// the original response; all gate failures leave no trace in the payments
// table.
func (s *AdmissionServiceImpl) Create(ctx context.Context, req ports.AdmissionRequest) (*ports.AdmissionResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.Validation("Amount must be positive")
	}
	if _, ok := s.currencies[req.Currency]; !ok {
		return nil, apperror.Validation(fmt.Sprintf("Unsupported currency: %s", req.Currency))
	}

	// Replay: the snapshot is authoritative for duplicates.
	snapshot, err := s.idempRepo.Get(ctx, req.MerchantID, req.IdempotencyKey)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("idempotency lookup: %w", err))
	}
	if snapshot != nil {
		return s.replay(snapshot)
	}

	// Fast-path gate: a lost lock means the original is still in flight.
	if !s.lock.Acquire(ctx, req.MerchantID, req.IdempotencyKey) {
		return s.resolvePending(ctx, req.MerchantID, req.IdempotencyKey)
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load customer: %w", err))
	}
	if err := s.kyc.Check(customer, req.Method); err != nil {
		return nil, err
	}

	eval, err := s.limits.Evaluate(ctx, req.CustomerID, req.Method, req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.rateLimit.Check(ctx, req.MerchantID, req.CustomerID, req.AccountID); err != nil {
		return nil, err
	}

	assessment, err := s.risk.Score(ctx, RiskInput{
		Customer:      customer,
		CustomerID:    req.CustomerID,
		Amount:        req.Amount,
		Destination:   req.Destination,
		Policy:        eval.Policy,
		VelocityCount: eval.VelocityCount,
	})
	if err != nil {
		return nil, err
	}

	amlDecision, err := s.aml.Evaluate(ctx, req.CustomerID, req.Method, req.Amount, req.Destination, eval.Policy)
	if err != nil {
		return nil, err
	}

	status := domain.ResolveStatus(assessment.Decision, amlDecision)
	paymentID := uuid.New()
	resp := &ports.AdmissionResponse{
		PaymentID:    paymentID,
		Status:       status,
		TraceID:      req.TraceID,
		RiskDecision: assessment.Decision,
		AmlDecision:  amlDecision,
	}

	if err := s.persist(ctx, req, resp, assessment.Score); err != nil {
		if postgres.IsUniqueViolation(err) {
			// Lost the DB race to a concurrent duplicate.
			return s.resolvePending(ctx, req.MerchantID, req.IdempotencyKey)
		}
		return nil, apperror.Internal(fmt.Errorf("persist admission: %w", err))
	}

	s.afterCommit(ctx, req, resp)

	s.log.Info().
		Str("payment_id", paymentID.String()).
		Str("merchant_id", req.MerchantID).
		Str("method", string(req.Method)).
		Str("status", string(status)).
		Int("risk_score", assessment.Score).
		Str("trace_id", req.TraceID).
		Msg("payment admitted")

	return resp, nil
}

// persist writes the payment, its outbox event and the idempotency snapshot
// atomically.
func (s *AdmissionServiceImpl) persist(ctx context.Context, req ports.AdmissionRequest, resp *ports.AdmissionResponse, riskScore int) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	err = s.paymentRepo.Create(ctx, dbTx, ports.PaymentCreateData{
		PaymentID:      resp.PaymentID,
		MerchantID:     req.MerchantID,
		CustomerID:     req.CustomerID,
		AccountID:      req.AccountID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Method:         req.Method,
		Destination:    req.Destination,
		Status:         resp.Status,
		IdempotencyKey: req.IdempotencyKey,
		RiskScore:      riskScore,
		RiskDecision:   resp.RiskDecision,
		AmlDecision:    resp.AmlDecision,
		Metadata:       req.Metadata,
	})
	if err != nil {
		return err
	}

	switch resp.Status {
	case domain.StatusReceived:
		payload := domain.PaymentRequestedPayload(resp.PaymentID, req.MerchantID, req.TraceID)
		if err := s.outboxRepo.Add(ctx, dbTx, resp.PaymentID, domain.EventPaymentRequested, payload); err != nil {
			return fmt.Errorf("enqueue requested event: %w", err)
		}
	case domain.StatusInReview:
		payload := domain.ReviewRequiredPayload(resp.PaymentID, req.MerchantID)
		if err := s.outboxRepo.Add(ctx, dbTx, resp.PaymentID, domain.EventPaymentReviewRequired, payload); err != nil {
			return fmt.Errorf("enqueue review event: %w", err)
		}
	}
	// BLOCKED admissions settle terminally with no event.

	respJSON, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response snapshot: %w", err)
	}
	err = s.idempRepo.Create(ctx, dbTx, &domain.IdempotencyRecord{
		MerchantID:      req.MerchantID,
		IdempotencyKey:  req.IdempotencyKey,
		PaymentID:       resp.PaymentID,
		StatusCode:      202,
		ResponsePayload: respJSON,
	})
	if err != nil {
		return err
	}

	return dbTx.Commit(ctx)
}

// afterCommit records outgoing history and samples the review queue gauge.
// The gauge is refreshed on every admission so it also falls as the queue
// drains. Blocked admissions do not count toward outgoing volume.
func (s *AdmissionServiceImpl) afterCommit(ctx context.Context, req ports.AdmissionRequest, resp *ports.AdmissionResponse) {
	s.metrics.Inc(monitor.CounterAdmissions)

	if resp.Status != domain.StatusBlocked {
		s.aml.RecordOutgoing(ctx, req.CustomerID, req.Method, req.Amount)
	}

	if size, err := s.paymentRepo.CountInReview(ctx); err == nil {
		s.metrics.SetGauge(monitor.GaugeReviewQueueSize, float64(size))
	}
}

// replay rebuilds the original response from its snapshot.
func (s *AdmissionServiceImpl) replay(record *domain.IdempotencyRecord) (*ports.AdmissionResponse, error) {
	resp := &ports.AdmissionResponse{}
	if err := json.Unmarshal(record.ResponsePayload, resp); err != nil {
		return nil, apperror.Internal(fmt.Errorf("unmarshal snapshot: %w", err))
	}
	s.metrics.Inc(monitor.CounterIdempotentReplay)
	return resp, nil
}

// resolvePending waits briefly for a concurrent original to commit its
// snapshot, then gives up with an idempotency conflict.
func (s *AdmissionServiceImpl) resolvePending(ctx context.Context, merchantID, idempotencyKey string) (*ports.AdmissionResponse, error) {
	for i := 0; i < pendingPollAttempts; i++ {
		select {
		case <-ctx.Done():
			return nil, apperror.Internal(ctx.Err())
		case <-time.After(pendingPollInterval):
		}

		record, err := s.idempRepo.Get(ctx, merchantID, idempotencyKey)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("idempotency lookup: %w", err))
		}
		if record != nil {
			return s.replay(record)
		}
	}
	return nil, apperror.IdempotencyConflict()
}
