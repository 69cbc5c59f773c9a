package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/tuition-service/internal/cache"
	"github.com/ignite/tuition-service/internal/client"
	"github.com/ignite/tuition-service/internal/config"
	"github.com/ignite/tuition-service/internal/database"
	"github.com/ignite/tuition-service/internal/handler"
	"github.com/ignite/tuition-service/internal/logger"
	"github.com/ignite/tuition-service/internal/repository"
	"github.com/ignite/tuition-service/internal/router"
	"github.com/ignite/tuition-service/internal/service"
	"github.com/ignite/tuition-service/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("student_service", cfg.StudentServiceURL).
		Str("payment_service", cfg.PaymentServiceURL).
		Bool("jwt_verification", cfg.JWTSecret != "").
		Msg("Starting tuition service")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	// ─── Initialize Store ──────────────────────────────────────────────
	var store service.TuitionStore = repository.NewTuitionRepository(pool)
	if rdb != nil {
		defer rdb.Close()
		store = cache.NewTuitionCache(store, rdb, cfg.CacheTTL, log)
	}

	// ─── Initialize Upstream Clients ───────────────────────────────────
	studentClient := client.NewStudentClient(cfg.StudentServiceURL, cfg.UpstreamTimeout, log)
	paymentClient := client.NewPaymentClient(cfg.PaymentServiceURL, cfg.UpstreamTimeout, log)

	// ─── Initialize Services & Handlers ───────────────────────────────
	tuitionService := service.NewTuitionService(store, studentClient, paymentClient, log)

	handlers := &router.Handlers{
		Tuition: handler.NewTuitionHandler(tuitionService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// In-flight orchestrations get the upstream timeout plus a margin to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout+5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
