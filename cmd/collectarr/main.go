package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/collectarr/collectarr/internal/api"
	"github.com/collectarr/collectarr/internal/config"
	"github.com/collectarr/collectarr/internal/recommend"
	"github.com/collectarr/collectarr/internal/scheduler"
	"github.com/collectarr/collectarr/internal/services/metadata"
	"github.com/collectarr/collectarr/internal/store"
	"github.com/collectarr/collectarr/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Collectarr")
	logger.WithField("data_dir", cfg.DataDir).Info("Configuration loaded")

	// 3. Initialize record store backend
	var records store.RecordStore
	switch cfg.StoreBackend {
	case config.BackendBolt:
		records, err = store.NewBoltStore(cfg.MediaDB, logger)
	default:
		records, err = store.NewFileStore(cfg.DataDir, logger)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}
	defer records.Close()
	logger.WithField("backend", cfg.StoreBackend).Info("Record store initialized")

	// 4. Initialize profile store
	profiles, err := store.OpenProfiles(cfg.ProfileDB, records, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize profile store: %w", err)
	}
	defer profiles.Close()
	logger.Info("Profile store initialized")

	// 5. Initialize services
	metadataClient := metadata.NewClient(cfg, logger)
	debouncer := metadata.NewDebouncer(metadataClient, time.Duration(cfg.MetadataDebounceMS)*time.Millisecond)
	defer debouncer.Flush()
	generator := recommend.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	logger.Info("Services initialized")

	// 6. Initialize backup scheduler
	sched := scheduler.NewScheduler(records, profiles, cfg.BackupSchedule, cfg.BackupDir, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 7. Initialize HTTP server
	server := api.NewServer(cfg, api.Deps{
		Records:   records,
		Profiles:  profiles,
		Metadata:  metadataClient,
		Debouncer: debouncer,
		Generator: generator,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 8. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Collectarr is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("Collectarr stopped")
	return nil
}
