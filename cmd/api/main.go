package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"account-transfer-service/config"
	httpHandler "account-transfer-service/internal/adapter/http/handler"
	"account-transfer-service/internal/adapter/http/middleware"
	"account-transfer-service/internal/adapter/storage/memory"
	pgStorage "account-transfer-service/internal/adapter/storage/postgres"
	redisStorage "account-transfer-service/internal/adapter/storage/redis"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/internal/service"
	"account-transfer-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("ATS_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Bool("postgres", cfg.Database.Enabled).
		Bool("redis", cfg.Redis.Enabled).
		Msg("Starting account transfer service")

	ctx := context.Background()

	var (
		healthCheckers []ports.HealthChecker
		notifiers      = service.MultiNotifier{service.NewLogNotifier(log)}
		journal        ports.TransferJournal = memory.NewTransferJournal()
		idempotency    ports.IdempotencyStore
		rateLimitStore *redisStorage.RateLimitStore
	)

	// PostgreSQL backs the transfer journal when enabled
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare database schema")
		}
		journal = pgStorage.NewTransferJournal(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	}

	// Redis backs idempotency keys, rate limits and the notification queue
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		idempotency = redisStorage.NewIdempotencyStore(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		if cfg.Notifier.QueueKey != "" {
			notifiers = append(notifiers, redisStorage.NewNotificationQueue(rdb, cfg.Notifier.QueueKey, log))
		}
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	var webhook *service.WebhookNotifier
	if cfg.Notifier.WebhookURL != "" {
		webhook = service.NewWebhookNotifier(
			cfg.Notifier.WebhookURL,
			cfg.Notifier.WebhookSecret,
			&http.Client{Timeout: cfg.Notifier.WebhookTimeout},
			cfg.Notifier.RetryIntervals,
			log,
		)
		notifiers = append(notifiers, webhook)
	}

	// Core services
	store := memory.NewAccountStore()
	transferEngine := service.NewTransferEngine(store, notifiers, journal, log)
	accountSvc := service.NewAccountService(store, log)
	historySvc := service.NewHistoryService(store, journal)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		TransferSvc:    transferEngine,
		AccountSvc:     accountSvc,
		HistorySvc:     historySvc,
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Idempotency.TTL,
		RateLimitStore: rateLimitStore,
		RateLimitRules: middleware.RateLimitRules(cfg.RateLimit),
		HealthCheckers: healthCheckers,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// pending webhook retries may sleep for minutes; do not block exit on them
	if webhook != nil {
		done := make(chan struct{})
		go func() {
			webhook.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-shutdownCtx.Done():
			log.Warn().Msg("Exiting with webhook deliveries still pending")
		}
	}

	log.Info().Msg("Server exited")
}
