package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"zenledger/internal/amqp"
	"zenledger/internal/backend"
	"zenledger/internal/config"
	"zenledger/internal/export"
	applog "zenledger/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting zenledger-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	// The worker reads the same backend the server writes.
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", applog.FieldError, err)
			}
		}()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exporter := export.NewExporter(cfg.ExportDir, cfg.ExportPrefix)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle := func(msg *amqp.LedgerEventMessage) error {
		logger.Info("Ledger event received",
			applog.FieldAction, msg.Action,
			applog.FieldTransactionID, msg.TransactionID)

		txs, err := result.Repos.LoadTransactions(ctx)
		if err != nil {
			return err
		}
		settings, err := result.Repos.LoadSettings(ctx)
		if err != nil {
			return err
		}

		path, err := exporter.WriteSnapshot(txs, settings)
		if err != nil {
			return err
		}
		logger.Info("Export snapshot written", "path", path, "transactions", len(txs))
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)

	// Consume until shutdown. A dropped broker connection triggers a
	// reconnect with backoff instead of terminating the worker.
	g.Go(func() error {
		for {
			err := amqpClient.ConsumeLedgerEvents(ctx, handle)
			if err == nil || errors.Is(err, context.Canceled) {
				return err
			}
			if !amqp.IsConnectionError(err) {
				return err
			}
			logger.Warn("Broker connection lost, reconnecting", applog.FieldError, err)
			if err := amqpClient.Reconnect(ctx); err != nil {
				return err
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
