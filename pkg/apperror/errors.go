package apperror

import (
	"fmt"
	"net/http"
)

// Category is the stable, snake_case error classification surfaced in the
// error envelope and in PaymentFailed events.
type Category string

const (
	CategoryValidation          Category = "validation_error"
	CategoryIdempotencyConflict Category = "idempotency_conflict"
	CategoryConcurrencyConflict Category = "concurrency_conflict"
	CategoryKycDenied           Category = "kyc_denied"
	CategoryLimitExceeded       Category = "limit_exceeded"
	CategoryRateLimited         Category = "rate_limited"
	CategoryProviderTimeout     Category = "provider_timeout"
	CategoryProvider5xx         Category = "provider_5xx"
	CategoryUnexpected          Category = "unexpected"
)

// AppError is a structured error that maps to HTTP responses and event
// fields. Dimension is set only for rate-limit errors.
type AppError struct {
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	HTTPStatus int      `json:"-"`
	Dimension  string   `json:"dimension,omitempty"`
	Err        error    `json:"-"` // wrapped internal error, never exposed
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Category, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation builds a 422 validation error.
func Validation(message string) *AppError {
	return &AppError{Category: CategoryValidation, Message: message, HTTPStatus: http.StatusUnprocessableEntity}
}

// KycDenied builds a 403 KYC denial.
func KycDenied(message string) *AppError {
	return &AppError{Category: CategoryKycDenied, Message: message, HTTPStatus: http.StatusForbidden}
}

// LimitExceeded builds a 422 limits violation.
func LimitExceeded(message string) *AppError {
	return &AppError{Category: CategoryLimitExceeded, Message: message, HTTPStatus: http.StatusUnprocessableEntity}
}

// RateLimited builds a 429 carrying the tripped dimension.
func RateLimited(dimension string) *AppError {
	return &AppError{
		Category:   CategoryRateLimited,
		Message:    fmt.Sprintf("Rate limited by %s", dimension),
		HTTPStatus: http.StatusTooManyRequests,
		Dimension:  dimension,
	}
}

// IdempotencyConflict builds a 409 for unresolvable duplicate admissions.
func IdempotencyConflict() *AppError {
	return &AppError{
		Category:   CategoryIdempotencyConflict,
		Message:    "Request with this idempotency key is already in progress",
		HTTPStatus: http.StatusConflict,
	}
}

// ConcurrencyConflict builds a 409 for lost optimistic-locking races.
func ConcurrencyConflict(message string) *AppError {
	return &AppError{Category: CategoryConcurrencyConflict, Message: message, HTTPStatus: http.StatusConflict}
}

// ProviderTimeout classifies a provider call that exceeded its deadline.
// Transient: eligible for retry.
func ProviderTimeout(err error) *AppError {
	return &AppError{
		Category:   CategoryProviderTimeout,
		Message:    "Provider timeout",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Provider5xx classifies a provider-side server error. Transient.
func Provider5xx(message string) *AppError {
	return &AppError{Category: CategoryProvider5xx, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// Internal wraps an unexpected error; the client sees a generic message.
func Internal(err error) *AppError {
	return &AppError{
		Category:   CategoryUnexpected,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
