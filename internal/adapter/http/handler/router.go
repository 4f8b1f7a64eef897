package handler

import (
	"payments-pipeline/internal/adapter/http/middleware"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/internal/monitor"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AdmissionSvc   ports.AdmissionService
	ReviewSvc      ports.ReviewService
	QuerySvc       ports.PaymentQueryService
	Metrics        *monitor.Metrics
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.TraceID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep: verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", Metrics(deps.Metrics))

	// API v1 routes
	v1 := r.Group("/api/v1")

	paymentHandler := NewPaymentHandler(deps.AdmissionSvc, deps.QuerySvc)
	reviewHandler := NewReviewHandler(deps.ReviewSvc)

	payments := v1.Group("/payments")
	{
		payments.POST("", paymentHandler.Create)
		payments.GET("/:id", paymentHandler.GetStatus)
	}

	review := v1.Group("/review")
	{
		review.POST("/:id/approve", reviewHandler.Approve)
		review.POST("/:id/reject", reviewHandler.Reject)
	}

	return r
}
