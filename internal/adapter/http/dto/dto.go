package dto

import (
	"time"

	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
)

// CreatePaymentRequest is the request body for payment admission. Caller
// identity (merchant, customer, account), the idempotency key and the trace
// id travel as headers, not body fields.
type CreatePaymentRequest struct {
	Amount      string         `json:"amount" binding:"required"`
	Currency    string         `json:"currency" binding:"required,len=3"`
	Method      string         `json:"method" binding:"required"`
	Destination *string        `json:"destination,omitempty" binding:"omitempty,max=128"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// PaymentAcceptedResponse is the 202 admission response body.
type PaymentAcceptedResponse struct {
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
	TraceID      string `json:"trace_id"`
	RiskDecision string `json:"risk_decision"`
	AmlDecision  string `json:"aml_decision"`
}

// ToAcceptedResponse maps a service response onto the wire shape.
func ToAcceptedResponse(resp *ports.AdmissionResponse) PaymentAcceptedResponse {
	return PaymentAcceptedResponse{
		PaymentID:    resp.PaymentID.String(),
		Status:       string(resp.Status),
		TraceID:      resp.TraceID,
		RiskDecision: string(resp.RiskDecision),
		AmlDecision:  string(resp.AmlDecision),
	}
}

// PaymentStatusResponse is the GET projection of a payment.
type PaymentStatusResponse struct {
	PaymentID    string  `json:"payment_id"`
	MerchantID   string  `json:"merchant_id"`
	CustomerID   string  `json:"customer_id"`
	Amount       string  `json:"amount"`
	Currency     string  `json:"currency"`
	Method       string  `json:"method"`
	Status       string  `json:"status"`
	RiskScore    int     `json:"risk_score"`
	RiskDecision string  `json:"risk_decision"`
	AmlDecision  string  `json:"aml_decision"`
	LastError    *string `json:"last_error,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	Version      int64   `json:"version"`
}

// ToStatusResponse maps a payment onto the wire shape.
func ToStatusResponse(p *domain.Payment) PaymentStatusResponse {
	return PaymentStatusResponse{
		PaymentID:    p.PaymentID.String(),
		MerchantID:   p.MerchantID,
		CustomerID:   p.CustomerID,
		Amount:       p.Amount.StringFixed(2),
		Currency:     p.Currency,
		Method:       string(p.Method),
		Status:       string(p.Status),
		RiskScore:    p.RiskScore,
		RiskDecision: string(p.RiskDecision),
		AmlDecision:  string(p.AmlDecision),
		LastError:    p.LastError,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    p.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Version:      p.Version,
	}
}
