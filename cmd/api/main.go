package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payments-pipeline/config"
	httpHandler "payments-pipeline/internal/adapter/http/handler"
	pgStorage "payments-pipeline/internal/adapter/storage/postgres"
	redisStorage "payments-pipeline/internal/adapter/storage/redis"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/internal/monitor"
	"payments-pipeline/internal/service"
	"payments-pipeline/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("payments-api", cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting payments admission API")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Initialize repositories
	paymentRepo := pgStorage.NewPaymentRepo(pool)
	outboxRepo := pgStorage.NewOutboxRepo(pool)
	idempotencyRepo := pgStorage.NewIdempotencyRepo(pool)
	customerRepo := pgStorage.NewCustomerRepo(pool)
	policyRepo := pgStorage.NewPolicyRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	admissionLock := redisStorage.NewAdmissionLock(rdb, cfg.Admission.IdempotencyTTL, log)
	rateCounter := redisStorage.NewRateLimitStore(rdb)
	limitsStore := redisStorage.NewLimitsStore(rdb)
	amlHistoryTTL := cfg.Aml.TotalWindow
	if cfg.Aml.StructuringWindow > amlHistoryTTL {
		amlHistoryTTL = cfg.Aml.StructuringWindow
	}
	amlHistory := redisStorage.NewAmlHistoryStore(rdb, cfg.Aml.HistoryMaxItems, amlHistoryTTL)

	// Initialize gate services
	metrics := monitor.New()
	kycSvc := service.NewKycService()
	limitsSvc := service.NewLimitsService(limitsStore, policyRepo, paymentRepo, cfg.Admission.PolicyCacheTTL, log)
	rateLimitSvc := service.NewRateLimitService(rateCounter, cfg.RateLimit, log)
	riskSvc := service.NewRiskService(paymentRepo, cfg.Risk, log)
	amlSvc, err := service.NewAmlService(amlHistory, paymentRepo, cfg.Aml, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AML service")
	}

	// Initialize pipeline services
	admissionSvc := service.NewAdmissionService(
		paymentRepo,
		outboxRepo,
		idempotencyRepo,
		customerRepo,
		transactor,
		admissionLock,
		kycSvc,
		limitsSvc,
		rateLimitSvc,
		riskSvc,
		amlSvc,
		metrics,
		cfg.Admission,
		log,
	)
	reviewSvc := service.NewReviewService(paymentRepo, outboxRepo, transactor, metrics, log)
	querySvc := service.NewPaymentQueryService(paymentRepo)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AdmissionSvc:   admissionSvc,
		ReviewSvc:      reviewSvc,
		QuerySvc:       querySvc,
		Metrics:        metrics,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
