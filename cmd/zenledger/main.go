package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"zenledger/internal/amqp"
	"zenledger/internal/backend"
	"zenledger/internal/classify"
	"zenledger/internal/config"
	"zenledger/internal/export"
	apphttp "zenledger/internal/http"
	"zenledger/internal/ledger"
	applog "zenledger/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	// Persistence backend
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

	// Classification gateway
	var classifier classify.Classifier
	switch cfg.ClassifierBackend {
	case "llm":
		classifier, err = classify.NewLLMClassifier(classify.LLMConfig{
			Endpoint:  cfg.ClassifierEndpoint,
			APIKey:    cfg.ClassifierAPIKey,
			Model:     cfg.ClassifierModel,
			MaxTokens: cfg.ClassifierTokens,
			Timeout:   cfg.ClassifierTimeout,
		})
		if err != nil {
			logger.Error("Failed to initialize LLM classifier", applog.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Initialized LLM classifier", "model", cfg.ClassifierModel)
	default:
		classifier = classify.NewRuleClassifier()
		logger.Info("Initialized rule classifier")
	}

	// AMQP event bus (optional)
	var events ledger.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			events = amqpClient
			logger.Info("Initialized AMQP event bus",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	store := ledger.NewStore(context.Background(), result.Repos)
	service := ledger.NewService(store, classifier, events)

	exporter := export.NewExporter(cfg.ExportDir, cfg.ExportPrefix)
	srv := apphttp.NewServer(":"+cfg.Port, service, result.Repos,
		apphttp.WithExportFilename(exporter.Filename))

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting zenledger server", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
