package service

import (
	"context"
	"fmt"

	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/pkg/apperror"

	"github.com/google/uuid"
)

// PaymentQueryServiceImpl implements ports.PaymentQueryService.
type PaymentQueryServiceImpl struct {
	paymentRepo ports.PaymentRepository
}

// NewPaymentQueryService creates a new PaymentQueryServiceImpl.
func NewPaymentQueryService(paymentRepo ports.PaymentRepository) *PaymentQueryServiceImpl {
	return &PaymentQueryServiceImpl{paymentRepo: paymentRepo}
}

// Get returns the payment projection, nil when unknown.
func (s *PaymentQueryServiceImpl) Get(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load payment: %w", err))
	}
	return payment, nil
}
