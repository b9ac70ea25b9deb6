package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/econova-solutions/lead-platform/cmd/mainconfig"
	"github.com/econova-solutions/lead-platform/internal/api/router"
	appconfig "github.com/econova-solutions/lead-platform/internal/config"
	"github.com/econova-solutions/lead-platform/internal/http/handlers"
	"github.com/econova-solutions/lead-platform/internal/intake"
	"github.com/econova-solutions/lead-platform/internal/leads"
	"github.com/econova-solutions/lead-platform/internal/notify"
	"github.com/econova-solutions/lead-platform/internal/observability/metrics"
	"github.com/econova-solutions/lead-platform/internal/routing"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

func main() {
	// Load .env if present (local development)
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting econova lead-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	intakeMetrics := metrics.NewIntakeMetrics(registry)

	// Lead storage: Postgres when DATABASE_URL is set, in-memory otherwise.
	// The admin query surface needs Postgres and stays disabled without it.
	var leadsRepo leads.Repository
	var adminDB *sql.DB
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create postgres pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to ping postgres", "error", err)
			os.Exit(1)
		}
		leadsRepo = leads.NewPostgresRepository(pool)

		adminDB, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open admin db handle", "error", err)
			os.Exit(1)
		}
		defer func() { _ = adminDB.Close() }()
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory lead storage")
		leadsRepo = leads.NewInMemoryRepository()
	}

	// Outbound email
	sender := buildEmailSender(ctx, cfg, logger)
	mailer := notify.NewLeadMailer(sender, logger)

	// Intake pipeline
	resolver := routing.NewResolver(cfg)
	intakeService := intake.NewService(leadsRepo, resolver, mailer, intakeMetrics, logger)
	intakeHandler := intake.NewHandler(intakeService, logger)

	// Admin surface
	var adminLeads *handlers.AdminLeadsHandler
	if adminDB != nil {
		adminLeads = handlers.NewAdminLeadsHandler(adminDB, logger)
	}
	adminAuth := handlers.NewAdminAuthHandler(cfg, logger)

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		IntakeHandler:      intakeHandler,
		AdminAuth:          adminAuth,
		AdminLeads:         adminLeads,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		IntakeRateLimit:    cfg.IntakeRateLimit,
		IntakeRateBurst:    cfg.IntakeRateBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildEmailSender picks the configured provider. "auto" prefers SendGrid
// when an API key is present, then SES, then the no-op stub.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	provider := cfg.EmailProvider
	if provider == "auto" {
		switch {
		case cfg.SendGridAPIKey != "":
			provider = "sendgrid"
		case cfg.AWSAccessKeyID != "":
			provider = "ses"
		default:
			provider = "stub"
		}
	}

	switch provider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender != nil {
			logger.Info("email notifications via SendGrid", "from", cfg.FromEmail)
			return sender
		}
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config, email disabled", "error", err)
			break
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender != nil {
			logger.Info("email notifications via SES", "from", cfg.FromEmail)
			return sender
		}
	}

	logger.Warn("no email provider configured, notifications are logged only")
	return notify.NewStubEmailSender(logger)
}
