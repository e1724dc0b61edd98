package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/tctpro/clubledger/internal/adapter/http"
	"github.com/tctpro/clubledger/internal/adapter/http/handler"
	"github.com/tctpro/clubledger/internal/adapter/http/middleware"
	postgresRepo "github.com/tctpro/clubledger/internal/adapter/repository/postgres"
	redisRepo "github.com/tctpro/clubledger/internal/adapter/repository/redis"
	"github.com/tctpro/clubledger/internal/infrastructure/auth"
	"github.com/tctpro/clubledger/internal/infrastructure/config"
	"github.com/tctpro/clubledger/internal/infrastructure/eventpublisher"
	"github.com/tctpro/clubledger/internal/infrastructure/logger"
	"github.com/tctpro/clubledger/internal/infrastructure/logging"
	"github.com/tctpro/clubledger/internal/infrastructure/metrics"
	"github.com/tctpro/clubledger/internal/infrastructure/postgres"
	"github.com/tctpro/clubledger/internal/infrastructure/redis"
	"github.com/tctpro/clubledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty, issued tokens are not safe for production")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Apply schema migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Str("path", cfg.MigrationsPath).Msg("migrations applied")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	memberRepo := postgresRepo.NewMemberRepository(pool)
	vehicleRepo := postgresRepo.NewVehicleRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	settlementRepo := postgresRepo.NewSettlementRepository(pool)
	fundRepo := postgresRepo.NewFundRepository(pool)
	settingsRepo := postgresRepo.NewSettingsRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)

	m := metrics.New()

	// Initialize use cases
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, auditRepo, idGen, log)
	memberUC := usecase.NewMemberUseCase(memberRepo, vehicleRepo, fundRepo, settlementRepo, auditRepo, idGen, cache)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, settlementRepo, auditRepo, idGen)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, vehicleRepo, auditRepo, idGen)
	settlementUC := usecase.NewSettlementUseCase(txManager, vehicleRepo, expenseRepo, settlementRepo, settingsUC, outboxRepo, auditRepo, idGen, m)
	fundUC := usecase.NewFundUseCase(txManager, fundRepo, memberRepo, vehicleRepo, outboxRepo, auditRepo, idGen, m)
	reconciliationUC := usecase.NewReconciliationUseCase(memberRepo, settlementRepo, fundRepo, vehicleRepo)

	// Financial writes drop the member's cached stats.
	settlementUC.SetStatsInvalidator(memberUC)
	fundUC.SetStatsInvalidator(memberUC)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(memberUC, jwtManager)
	memberHandler := handler.NewMemberHandler(memberUC)
	vehicleHandler := handler.NewVehicleHandler(vehicleUC)
	expenseHandler := handler.NewExpenseHandler(expenseUC)
	settlementHandler := handler.NewSettlementHandler(settlementUC)
	fundHandler := handler.NewFundHandler(fundUC)
	settingsHandler := handler.NewSettingsHandler(settingsUC)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:           authHandler,
		MemberHandler:         memberHandler,
		VehicleHandler:        vehicleHandler,
		ExpenseHandler:        expenseHandler,
		SettlementHandler:     settlementHandler,
		FundHandler:           fundHandler,
		SettingsHandler:       settingsHandler,
		ReconciliationHandler: reconciliationHandler,
		HealthHandler:         healthHandler,
		JWTManager:            jwtManager,
		IdempotencyStore:      idempotencyStore,
		RateLimiter:           middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:                log,
	})

	// Start the outbox relay
	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(slogger.Logger),
		Retrier:    postgresRepo.NewRetrier(),
		Logger:     slogger.Logger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
	})

	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("outbox relay stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
