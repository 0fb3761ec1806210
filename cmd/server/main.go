package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/cajafund/cajafund/internal/adapter/http"
	"github.com/cajafund/cajafund/internal/adapter/http/handler"
	apimiddleware "github.com/cajafund/cajafund/internal/adapter/http/middleware"
	postgresRepo "github.com/cajafund/cajafund/internal/adapter/repository/postgres"
	redisRepo "github.com/cajafund/cajafund/internal/adapter/repository/redis"
	"github.com/cajafund/cajafund/internal/infrastructure/config"
	"github.com/cajafund/cajafund/internal/infrastructure/logger"
	"github.com/cajafund/cajafund/internal/infrastructure/postgres"
	"github.com/cajafund/cajafund/internal/infrastructure/redis"
	"github.com/cajafund/cajafund/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

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
	loanRepo := postgresRepo.NewLoanRepository(pool)
	installmentRepo := postgresRepo.NewInstallmentRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	fundConfigRepo := postgresRepo.NewFundConfigRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	fundConfigUC := usecase.NewFundConfigUseCase(fundConfigRepo, cache, appLogger)
	memberUC := usecase.NewMemberUseCase(txManager, memberRepo, loanRepo, ledgerRepo, fundConfigUC, idGen)
	ledgerUC := usecase.NewLedgerUseCase(txManager, ledgerRepo, memberRepo, idGen, retrier)
	loanUC := usecase.NewLoanUseCase(txManager, loanRepo, installmentRepo, memberRepo, ledgerRepo, fundConfigUC, idGen, retrier)
	repaymentUC := usecase.NewRepaymentUseCase(txManager, loanRepo, installmentRepo, memberRepo, ledgerRepo, idGen, retrier)

	// Initialize handlers
	memberHandler := handler.NewMemberHandler(memberUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	loanHandler := handler.NewLoanHandler(loanUC)
	repaymentHandler := handler.NewRepaymentHandler(repaymentUC)
	fundConfigHandler := handler.NewFundConfigHandler(fundConfigUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		MemberHandler:     memberHandler,
		LedgerHandler:     ledgerHandler,
		LoanHandler:       loanHandler,
		RepaymentHandler:  repaymentHandler,
		FundConfigHandler: fundConfigHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		RateLimiter:       apimiddleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		LoggingMiddleware: apimiddleware.NewLoggingMiddleware(appLogger),
	})

	// Create server
	server := newHTTPServer(cfg, router)

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

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}
