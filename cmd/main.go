package main

import (
	"context"
	"errors"
	"fmt"
	"loan-offer-service/internal/api"
	"loan-offer-service/internal/batch"
	"loan-offer-service/internal/config"
	"loan-offer-service/internal/domain/offer"
	"loan-offer-service/internal/event"
	"loan-offer-service/internal/infrastructure/bankfile"
	"loan-offer-service/internal/infrastructure/logging"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
)

const rabbitMQConnectAttempts = 3

// @title Loan Offer Service API
// @version 1.0
// @description Compares personal loan offers from partner banks for a requested amount and duration.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
func main() {
	cfg, logger := initializeApp()

	catalog := initializeCatalog(cfg, logger)
	offerRepo := initializeRepository(cfg, catalog, logger)

	rabbitMQConn := setupRabbitMQ(cfg, logger)
	publisher := initializePublisher(cfg, rabbitMQConn, logger)

	offerService := offer.NewOfferService(offerRepo, publisher, logger)
	validator := offer.NewRequestValidator(catalog)

	auditJob := batch.NewSourceAuditJob(offerRepo, logger)
	cronScheduler := startBatchJobs(cfg, logger, auditJob)
	router := api.SetupRouter(offerService, validator, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", cfg.ConfigFileUsed)

	return cfg, logger
}

func initializeCatalog(cfg *config.Config, logger *slog.Logger) offer.Catalog {
	catalog, err := cfg.Offers.Catalog()
	if err != nil {
		logger.Error("Failed to build offer catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("Offer catalog loaded",
		"banks", len(catalog.Sources()),
		"allowed_amounts", catalog.AllowedAmounts(),
		"allowed_durations", catalog.AllowedDurations(),
	)
	return catalog
}

func initializeRepository(cfg *config.Config, catalog offer.Catalog, logger *slog.Logger) *bankfile.OfferRepository {
	repo, err := bankfile.NewOfferRepository(cfg.Offers.DataDir, catalog, logger)
	if err != nil {
		logger.Error("Failed to initialize offer repository", "data_dir", cfg.Offers.DataDir, "error", err)
		os.Exit(1)
	}
	return repo
}

func initializePublisher(cfg *config.Config, conn *amqp.Connection, logger *slog.Logger) event.EventPublisher {
	if conn == nil {
		return event.NewNoopEventPublisher(logger)
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Warn("Failed to set up RabbitMQ publisher, lead events disabled", slog.Any("error", err))
		return event.NewNoopEventPublisher(logger)
	}
	return publisher
}

// setupRabbitMQ returns nil when publishing is disabled or the broker cannot
// be reached. Searches keep working without it.
func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) *amqp.Connection {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ publishing disabled.")
		return nil
	}
	if cfg.RabbitMQ.URL == "" {
		logger.Warn("RabbitMQ URL is not configured, lead events disabled")
		return nil
	}
	conn, err := connectRabbitMQ(cfg.RabbitMQ.URL, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, lead events disabled", slog.Any("error", err))
		return nil
	}
	return conn
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 1; i <= rabbitMQConnectAttempts; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					if e != nil {
						logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
					}
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", rabbitMQConnectAttempts),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", rabbitMQConnectAttempts, err)
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	switch {
	case rabbitConn == nil:
		logger.Info("RabbitMQ connection was not established, skipping close.")
	case rabbitConn.IsClosed():
		logger.Info("RabbitMQ connection already closed, skipping close.")
	default:
		logger.Info("Closing RabbitMQ connection...")
		if err := rabbitConn.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
		} else {
			logger.Info("RabbitMQ connection closed.")
		}
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			closeRabbitMQConnection(rabbitConn, logger)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	closeRabbitMQConnection(rabbitConn, logger)

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, auditJob *batch.SourceAuditJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	if !cfg.Audit.Enabled {
		logger.Info("Offer source audit disabled.")
		c.Start()
		return c
	}

	scheduleSpec := cfg.Audit.Schedule
	if scheduleSpec == "" {
		scheduleSpec = "*/10 * * * *"
		logger.Warn("Source audit schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Audit.Timeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "SourceAudit")
		jobLogger.Info("Cron triggered: Running offer source audit job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := auditJob.Run(ctx); runErr != nil {
			jobLogger.Error("Offer source audit job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Offer source audit job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule offer source audit job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled offer source audit job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
