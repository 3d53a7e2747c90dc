package handler

import (
	"time"

	"account-transfer-service/internal/adapter/http/middleware"
	redisStore "account-transfer-service/internal/adapter/storage/redis"
	"account-transfer-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	TransferSvc    ports.TransferService
	AccountSvc     ports.AccountService
	HistorySvc     ports.TransferHistoryService
	Idempotency    ports.IdempotencyStore // nil = Idempotency-Key is ignored
	IdempotencyTTL time.Duration
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	RateLimitRules map[string]middleware.RateLimitRule
	HealthCheckers []ports.HealthChecker
	MaxBodyBytes   int64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.MaxBodyBytes > 0 {
		r.Use(middleware.MaxBodySize(deps.MaxBodyBytes))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := deps.RateLimitRules[group]
		if !ok || rule.Limit <= 0 {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	accountHandler := NewAccountHandler(deps.AccountSvc, deps.HistorySvc)
	accounts := v1.Group("/accounts", rl(middleware.GroupAccounts))
	{
		accounts.POST("", accountHandler.CreateAccount)
		accounts.GET("/:id", accountHandler.GetAccount)
		accounts.GET("/:id/transfers", accountHandler.ListTransfers)
	}

	transferHandler := NewTransferHandler(deps.TransferSvc, deps.Idempotency, deps.IdempotencyTTL, deps.Logger)
	v1.POST("/transfers", rl(middleware.GroupTransfers), transferHandler.Transfer)

	return r
}
