package handler

import (
	"context"
	"net/http"

	"payments-pipeline/internal/adapter/http/dto"
	"payments-pipeline/internal/adapter/http/middleware"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/pkg/apperror"
	"payments-pipeline/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler handles manual review decisions.
type ReviewHandler struct {
	reviewSvc ports.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewSvc ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// Approve handles POST /api/v1/review/:id/approve.
func (h *ReviewHandler) Approve(c *gin.Context) {
	h.decide(c, h.reviewSvc.Approve)
}

// Reject handles POST /api/v1/review/:id/reject.
func (h *ReviewHandler) Reject(c *gin.Context) {
	h.decide(c, h.reviewSvc.Reject)
}

func (h *ReviewHandler) decide(c *gin.Context, decision func(context.Context, uuid.UUID, string) (*ports.AdmissionResponse, error)) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("Invalid payment id"))
		return
	}

	result, err := decision(c.Request.Context(), paymentID, c.GetString(middleware.CtxTraceID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ToAcceptedResponse(result))
}
