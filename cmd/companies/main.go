package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/db"
	"github.com/monocle-dev/companies/internal/auth"
	"github.com/monocle-dev/companies/internal/config"
	"github.com/monocle-dev/companies/internal/middleware"
	"github.com/monocle-dev/companies/internal/monitors"
	"github.com/monocle-dev/companies/internal/router"
	"github.com/monocle-dev/companies/internal/scheduler"
	"github.com/monocle-dev/companies/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	setupLogging(cfg)
	log.Infof("Starting with %s", cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.Database)

	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	var revoker auth.Revoker = auth.NopRevoker{}

	if cfg.Redis.Addr != "" {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)

		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}

		defer client.Close()
		revoker = auth.NewRedisRevoker(client)
	} else {
		log.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)

	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	checker, err := auth.NewRoleChecker(cfg.Auth.RolePolicy, store.Users)

	if err != nil {
		log.Fatalf("Failed to create role checker: %v", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	metrics := middleware.NewMetrics("companies")
	monitor := monitors.NewBackendMonitor(store, cfg.Monitor.ProbeTimeout, metrics)

	jobs := scheduler.NewScheduler(ctx)
	jobs.AddJob("database-probe", cfg.Monitor.ProbeInterval, monitor.Check)
	jobs.AddJob("rate-limit-cleanup", 5*time.Minute, func(context.Context) error {
		limiter.Cleanup()
		return nil
	})

	deps := router.Dependencies{
		Store:          store,
		Tokens:         tokens,
		Revoker:        revoker,
		Checker:        checker,
		Metrics:        metrics,
		AuthLimiter:    limiter,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}

	if webhooks := services.NewWebhookNotifier(cfg.Webhooks.DiscordURL, cfg.Webhooks.SlackURL); webhooks != nil {
		deps.Notifier = webhooks
	}

	r := router.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Listening on :%s", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}

	jobs.Stop()

	if err := store.Close(shutdownCtx); err != nil {
		log.Errorf("Failed to close database: %v", err)
	}
}

func setupLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)

	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}

	log.SetLevel(level)
}
