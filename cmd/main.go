package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"excer/internal/adapters/config"
	"excer/internal/adapters/errors/noop"
	"excer/internal/adapters/errors/sentry"
	adapterredis "excer/internal/adapters/redis"
	"excer/internal/adapters/reddit"
	"excer/internal/api"
	"excer/internal/api/health"
	stocksapi "excer/internal/api/stocks"
	"excer/internal/notifier"
	repository "excer/internal/repository/redis"
	"excer/internal/workers"
	"excer/internal/workers/ingest"
	"excer/pkg/errors"
	"excer/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	redisClient, err := adapterredis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	snapshots := repository.NewSnapshotRepository(redisClient.Client())
	redditClient := reddit.NewClient(cfg.Reddit)

	var digest ingest.Notifier
	if cfg.Telegram.Enabled {
		tg, err := notifier.NewTelegram(cfg.Telegram)
		if err != nil {
			log.Warnf("Failed to initialize Telegram notifier: %v", err)
		} else {
			digest = tg
			log.Info("Telegram digest notifier initialized")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := workers.NewScheduler()
	scheduler.RegisterWorker(ingest.NewWorker(cfg.Ingest, redditClient, snapshots, digest))
	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	server := api.NewServer(
		api.ServerConfig{
			Port:        cfg.Server.Port,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
		},
		health.New(log, redisClient.Client(), cfg.App.Name, cfg.App.Version),
		stocksapi.New(snapshots, log),
		log,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Errorf("HTTP server failed: %v", err)
			cancel()
		}
	}()

	waitForShutdown(ctx, cancel, scheduler, server, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// waitForShutdown waits for a shutdown signal and stops everything in order
func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	scheduler *workers.Scheduler,
	server *api.Server,
	errorTracker errors.Tracker,
	log *logger.Logger,
) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutting down...")
	case <-ctx.Done():
		log.Info("Shutting down after internal failure...")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("HTTP server shutdown failed: %v", err)
	}

	if err := scheduler.Stop(); err != nil {
		log.Warnf("Scheduler stop failed: %v", err)
	}

	if errorTracker != nil {
		if err := errorTracker.Flush(shutdownCtx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
