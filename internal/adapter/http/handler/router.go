package handler

import (
	"tron-wallet-service/internal/adapter/http/middleware"
	redisStore "tron-wallet-service/internal/adapter/storage/redis"
	"tron-wallet-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	WalletSvc      ports.WalletService
	TransferSvc    ports.TransferService
	TwoFactorSvc   ports.TwoFactorService
	PriceSvc       ports.PriceService
	NotifRepo      ports.NotificationRepository
	TokenSvc       ports.TokenService
	Monitors       MonitorController
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc, deps.Monitors)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	priceHandler := NewPriceHandler(deps.PriceSvc)
	v1.GET("/price", rl("dashboard"), priceHandler.Quote)

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	auth.POST("/logout", jwtAuth, authHandler.Logout)

	walletHandler := NewWalletHandler(deps.WalletSvc, deps.Monitors)
	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.GET("", rl("dashboard"), walletHandler.List)
		wallets.POST("", rl("dashboard"), walletHandler.Create)
		wallets.DELETE("/:id", rl("dashboard"), walletHandler.Delete)
		wallets.POST("/refresh", rl("dashboard"), walletHandler.Refresh)
	}

	transferHandler := NewTransferHandler(deps.TransferSvc)
	transfers := v1.Group("/transfers", jwtAuth)
	{
		transfers.POST("", rl("transfers"), transferHandler.Begin)
		transfers.POST("/code", rl("transfers"), transferHandler.SubmitCode)
	}

	securityHandler := NewSecurityHandler(deps.TwoFactorSvc)
	security := v1.Group("/security/2fa", jwtAuth)
	{
		security.GET("", rl("dashboard"), securityHandler.Status)
		security.POST("/setup", rl("dashboard"), securityHandler.Setup)
		security.POST("/confirm", rl("dashboard"), securityHandler.Confirm)
		security.DELETE("", rl("dashboard"), securityHandler.Disable)
	}

	notifHandler := NewNotificationHandler(deps.NotifRepo)
	notifications := v1.Group("/notifications", jwtAuth)
	{
		notifications.GET("", rl("dashboard"), notifHandler.List)
		notifications.POST("/read", rl("dashboard"), notifHandler.MarkAllRead)
	}

	return r
}
