package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/orchard.works/internal/config"
	"github.com/Simplici0/orchard.works/internal/db"
	"github.com/Simplici0/orchard.works/internal/i18n"
	"github.com/Simplici0/orchard.works/internal/logging"
	"github.com/Simplici0/orchard.works/internal/metrics"
	"github.com/Simplici0/orchard.works/internal/migrations"
	"github.com/Simplici0/orchard.works/internal/seed"
	"github.com/Simplici0/orchard.works/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger := logging.Setup(logging.Options{
		Production: !cfg.IsDev(),
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	})
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database.DB); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	if cfg.SeedSample {
		stats, err := seed.Run(database.DB, seed.Samples)
		if err != nil {
			logger.Fatal("failed to seed sample catalog", zap.Error(err))
		}
		logger.Info("sample catalog seeded", zap.Int("inserts", stats.Inserts))
	}

	srv := &server{
		catalog:     store.NewCatalog(database),
		calcs:       store.NewCalculations(database),
		metrics:     metrics.NewCollector("orchard"),
		currency:    cfg.CurrencyLabel,
		defaultLang: i18n.ParseDefault(cfg.DefaultLang),
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
