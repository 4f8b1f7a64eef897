package handler

import (
	"net/http"

	"payments-pipeline/internal/adapter/http/dto"
	"payments-pipeline/internal/adapter/http/middleware"
	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/pkg/apperror"
	"payments-pipeline/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles payment admission and status endpoints.
type PaymentHandler struct {
	admissionSvc ports.AdmissionService
	querySvc     ports.PaymentQueryService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(admissionSvc ports.AdmissionService, querySvc ports.PaymentQueryService) *PaymentHandler {
	return &PaymentHandler{admissionSvc: admissionSvc, querySvc: querySvc}
}

// Create handles POST /api/v1/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	idempotencyKey, ok := dto.ParseIdempotencyKey(c.GetHeader(middleware.HeaderIdempotencyKey))
	if !ok {
		response.Error(c, apperror.Validation("Idempotency-Key header is required (max 128 chars)"))
		return
	}

	merchantID, ok := dto.ParseIdentity(c.GetHeader(middleware.HeaderMerchantID))
	if !ok {
		response.Error(c, apperror.Validation("X-Merchant-Id header is required (max 128 chars)"))
		return
	}
	customerID, ok := dto.ParseIdentity(c.GetHeader(middleware.HeaderCustomerID))
	if !ok {
		response.Error(c, apperror.Validation("X-Customer-Id header is required (max 128 chars)"))
		return
	}
	accountID, ok := dto.ParseIdentity(c.GetHeader(middleware.HeaderAccountID))
	if !ok {
		response.Error(c, apperror.Validation("X-Account-Id header is required (max 128 chars)"))
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, ok := dto.ParseAmount(req.Amount)
	if !ok {
		response.Error(c, apperror.Validation("Amount must be a positive decimal with at most 2 fraction digits"))
		return
	}
	method, ok := domain.ParseMethod(req.Method)
	if !ok {
		response.Error(c, apperror.Validation("Method must be one of PIX, BOLETO, TED, CARD"))
		return
	}

	result, err := h.admissionSvc.Create(c.Request.Context(), ports.AdmissionRequest{
		MerchantID:     merchantID,
		CustomerID:     customerID,
		AccountID:      accountID,
		IdempotencyKey: idempotencyKey,
		Amount:         amount,
		Currency:       req.Currency,
		Method:         method,
		Destination:    req.Destination,
		Metadata:       req.Metadata,
		TraceID:        c.GetString(middleware.CtxTraceID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusAccepted, dto.ToAcceptedResponse(result))
}

// GetStatus handles GET /api/v1/payments/:id.
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid payment id"))
		return
	}

	payment, err := h.querySvc.Get(c.Request.Context(), paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payment == nil {
		response.NotFound(c, "Payment not found")
		return
	}

	response.JSON(c, http.StatusOK, dto.ToStatusResponse(payment))
}
