package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"shopmate/internal/api"
	"shopmate/internal/catalog"
	"shopmate/internal/config"
	"shopmate/internal/core"
	"shopmate/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.LogLevel == "DEBUG" {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Credential store
	dbStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer dbStore.Close()

	// Product catalog: a load failure is not fatal, queries report the
	// dataset as unavailable until the process is restarted with the file
	// in place.
	products, err := catalog.Load(cfg.CatalogPath, logger)
	if err != nil {
		logger.Warn("catalog unavailable, product queries will fail", zap.Error(err))
		products = nil
	}

	chatService := core.NewChatService(cfg.GeminiAPIKey, logger)
	defer chatService.Close()

	authService := core.NewAuthService(dbStore, logger)
	sentimentService := core.NewSentimentService(cfg.SentimentAPIURL, cfg.SentimentAPIToken, logger)
	similarityService := core.NewSimilarityService(cfg.FeatureExtractorURL, logger)

	apiHandler := api.NewAPIHandler(authService, chatService, sentimentService, similarityService, products, logger)
	router := api.NewRouter(apiHandler)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // model calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("addr", serverAddr),
			zap.Bool("chat_available", chatService.Available()),
			zap.Int("catalog_size", products.Size()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not listen", zap.String("addr", serverAddr), zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting gracefully")
}
