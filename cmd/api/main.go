package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tron-wallet-service/config"
	httpHandler "tron-wallet-service/internal/adapter/http/handler"
	"tron-wallet-service/internal/adapter/price"
	pgStorage "tron-wallet-service/internal/adapter/storage/postgres"
	redisStorage "tron-wallet-service/internal/adapter/storage/redis"
	"tron-wallet-service/internal/adapter/tron"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/internal/service"
	"tron-wallet-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Tron Wallet Service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	userRepo := pgStorage.NewUserRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool, log)
	notifRepo := pgStorage.NewNotificationRepo(pool, log)
	profileRepo := pgStorage.NewProfileRepo(pool, log)

	// Initialize Redis stores
	quoteCache := redisStorage.NewQuoteCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize TRON adapters
	tronClient := tron.NewClient(cfg.Tron, log)
	keyGen := tron.NewKeyGenerator()
	addrValidator := tron.NewValidator()

	// Initialize price feed
	priceFeed := price.NewFeed(cfg.Price, log)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	otpSvc := service.NewTOTPService()

	// Initialize business services
	authSvc := service.NewAuthService(userRepo, profileRepo, hashSvc, tokenSvc, log)
	walletSvc := service.NewWalletService(walletRepo, keyGen, log)
	twoFactorSvc := service.NewTwoFactorService(profileRepo, otpSvc, log)
	priceSvc := service.NewPriceService(priceFeed, quoteCache, cfg.Price.CacheTTL, log)

	// The monitor manager owns per-user reconciliation loops and doubles
	// as the settlement scheduler for completed transfers.
	monitors := service.NewMonitorManager(
		walletRepo,
		notifRepo,
		tronClient,
		cfg.Monitor.Interval,
		cfg.Monitor.SettlementDelay,
		log,
	)
	transferSvc := service.NewTransferService(
		walletRepo,
		profileRepo,
		otpSvc,
		addrValidator,
		tronClient,
		monitors,
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		WalletSvc:      walletSvc,
		TransferSvc:    transferSvc,
		TwoFactorSvc:   twoFactorSvc,
		PriceSvc:       priceSvc,
		NotifRepo:      notifRepo,
		TokenSvc:       tokenSvc,
		Monitors:       monitors,
		RateLimitStore: rateLimitStore,
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

	// Stop balance monitors after the listener drains.
	monitors.StopAll()

	log.Info().Msg("Server exited")
}
