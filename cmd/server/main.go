package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/drug-interaction-server/internal/api"
	"github.com/drug-interaction-server/internal/config"
	"github.com/drug-interaction-server/internal/service"
	"github.com/drug-interaction-server/internal/setup"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := setup.NewLogger(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the dataset and build the interaction graph
	runtime, err := setup.BuildRuntime(ctx, configManager, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build interaction graph")
	}
	defer runtime.Close()

	checker, err := service.NewInteractionService(runtime.Provider, service.NewRuleScorer(), cfg.Risk.PredictionCache, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create interaction service")
	}
	risk := service.NewRiskAggregator(checker, cfg.Risk.MaxWorkers, cfg.Risk.MaxMedications, logger)

	server := api.NewServer(configManager, runtime.Provider, checker, risk, logger)

	// SIGHUP reloads the dataset in place; SIGINT/SIGTERM shut down.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for sig := range sigChan {
			if sig == syscall.SIGHUP {
				logger.Info("Reload signal received, rebuilding graph")
				if err := runtime.Reload(ctx, configManager, logger); err != nil {
					logger.WithError(err).Error("Graph reload failed, keeping current graph")
					continue
				}
				checker.PurgeCache()
				logger.Info("Graph reloaded")
				continue
			}
			logger.WithField("signal", sig.String()).Info("Shutdown signal received")
			cancel()
			return
		}
	}()

	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Starting drug interaction server")

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}
