package service

import (
	"testing"

	"payments-pipeline/internal/core/domain"
	"payments-pipeline/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestKycService_Check(t *testing.T) {
	svc := NewKycService()

	active := func(level domain.KycLevel) *domain.Customer {
		return &domain.Customer{CustomerID: "cust-001", KycLevel: level, Status: domain.CustomerActive}
	}

	t.Run("basic customer on PIX passes", func(t *testing.T) {
		assert.NoError(t, svc.Check(active(domain.KycBasic), domain.MethodPIX))
	})

	t.Run("full customer on TED passes", func(t *testing.T) {
		assert.NoError(t, svc.Check(active(domain.KycFull), domain.MethodTED))
	})

	t.Run("basic customer on TED is denied", func(t *testing.T) {
		err := svc.Check(active(domain.KycBasic), domain.MethodTED)
		assertCategory(t, err, apperror.CategoryKycDenied)
	})

	t.Run("unverified customer on PIX is denied", func(t *testing.T) {
		err := svc.Check(active(domain.KycNone), domain.MethodPIX)
		assertCategory(t, err, apperror.CategoryKycDenied)
	})

	t.Run("suspended customer is denied regardless of level", func(t *testing.T) {
		customer := &domain.Customer{CustomerID: "cust-001", KycLevel: domain.KycFull, Status: domain.CustomerSuspended}
		err := svc.Check(customer, domain.MethodPIX)
		assertCategory(t, err, apperror.CategoryKycDenied)
	})

	t.Run("unknown customer is a validation failure", func(t *testing.T) {
		err := svc.Check(nil, domain.MethodPIX)
		assertCategory(t, err, apperror.CategoryValidation)
	})

	t.Run("unknown method is a validation failure", func(t *testing.T) {
		err := svc.Check(active(domain.KycFull), domain.PaymentMethod("WIRE"))
		assertCategory(t, err, apperror.CategoryValidation)
	})
}
