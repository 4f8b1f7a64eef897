package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"payments-pipeline/config"
	"payments-pipeline/internal/adapter/provider"
	pgStorage "payments-pipeline/internal/adapter/storage/postgres"
	"payments-pipeline/internal/monitor"
	"payments-pipeline/internal/worker"
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
	log := logger.New("payments-worker", cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("provider_base_url", cfg.Provider.BaseURL).
		Msg("Starting outbox worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize repositories
	paymentRepo := pgStorage.NewPaymentRepo(pool)
	outboxRepo := pgStorage.NewOutboxRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	metrics := monitor.New()

	// Initialize provider driver
	client := provider.NewClient(cfg.Provider)
	driver := provider.NewDriver(client, cfg.Provider, metrics, log)

	w := worker.NewOutboxWorker(paymentRepo, outboxRepo, transactor, driver, metrics, cfg.Worker, log)

	// Run until signalled
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down worker...")

	cancel()
	<-done
	log.Info().Msg("Worker exited")
}
