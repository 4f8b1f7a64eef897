package service

import (
	"fmt"

	"payments-pipeline/internal/core/domain"
	"payments-pipeline/pkg/apperror"
)

// KycService gates admission on customer standing and the rail's minimum
// verification tier.
type KycService struct{}

// NewKycService creates a new KycService.
func NewKycService() *KycService {
	return &KycService{}
}

// Check validates the customer against the rail profile. A missing customer
// is a validation failure; standing and tier violations are KYC denials.
func (s *KycService) Check(customer *domain.Customer, method domain.PaymentMethod) error {
	if customer == nil {
		return apperror.Validation("Unknown customer")
	}
	if customer.Status != domain.CustomerActive {
		return apperror.KycDenied("Customer is not active")
	}

	profile, ok := domain.RailProfileFor(method)
	if !ok {
		return apperror.Validation(fmt.Sprintf("Unsupported payment method: %s", method))
	}
	if domain.KycRank(customer.KycLevel) < domain.KycRank(profile.MinimumKyc) {
		return apperror.KycDenied(fmt.Sprintf("Method %s requires KYC level %s", method, profile.MinimumKyc))
	}
	return nil
}
