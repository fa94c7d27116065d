package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/dago-node-pdfgen/internal/assets"
	"github.com/aescanero/dago-node-pdfgen/internal/config"
	"github.com/aescanero/dago-node-pdfgen/internal/eval/template"
	"github.com/aescanero/dago-node-pdfgen/internal/helpers"
	"github.com/aescanero/dago-node-pdfgen/internal/render"
	"github.com/aescanero/dago-node-pdfgen/internal/templates"
	"github.com/aescanero/dago-node-pdfgen/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting pdfgen worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Assets are read once and never change afterwards
	assetMaps, err := assets.Load(cfg.ImageDir, cfg.ResourceDir, logger)
	if err != nil {
		logger.Fatal("failed to load assets", zap.Error(err))
	}

	store := templates.NewStore(cfg.TemplateDir, logger)
	if err := store.Load(); err != nil {
		logger.Fatal("failed to load templates", zap.Error(err))
	}

	registry := helpers.NewRegistry(assetMaps)
	engine := template.NewEngine(registry)
	engine.SetPartials(store.Partials())
	logger.Info("helpers registered", zap.Strings("helpers", registry.Names()))

	if err := render.ValidateTemplates(store, engine); err != nil {
		logger.Fatal("failed to validate templates", zap.Error(err))
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	if cfg.DevMode {
		err := store.Watch(appCtx, func() {
			engine.SetPartials(store.Partials())
			if err := render.ValidateTemplates(store, engine); err != nil {
				logger.Error("reloaded templates are invalid", zap.Error(err))
				return
			}
			logger.Info("templates reloaded")
		})
		if err != nil {
			logger.Warn("template watch disabled", zap.Error(err))
		}
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	renderer := render.NewRenderer(store, engine, logger)

	w := worker.NewWorker(cfg, redisClient, renderer, logger)
	if err := w.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}

	healthServer := worker.NewHealthServer(cfg.HealthPort, redisClient, store, logger)
	if err := healthServer.Start(); err != nil {
		logger.Fatal("failed to start health server", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("pdfgen worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping worker")
	appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	if err := w.Stop(shutdownCtx); err != nil {
		logger.Warn("shutdown timeout exceeded, forcing exit", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis connection", zap.Error(err))
	}

	logger.Info("worker stopped")
}

// initLogger initializes the logger
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
