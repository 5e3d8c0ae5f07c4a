package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/quickdrop/quickdrop/internal/config"
	"github.com/quickdrop/quickdrop/internal/notifications"
	"github.com/quickdrop/quickdrop/internal/reporting"
	"github.com/quickdrop/quickdrop/internal/scheduler"
	"github.com/quickdrop/quickdrop/internal/server"
	"github.com/quickdrop/quickdrop/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Info("Starting")

	store, err := storage.NewLocalStorage(afero.NewOsFs(), cfg.RootDir)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	srv, err := server.New(cfg, store)
	if err != nil {
		logrus.Fatalf("Failed to build server: %v", err)
	}

	if cfg.DigestEnabled() {
		notificationService := notifications.NewService(cfg)
		reportingService := reporting.NewService(cfg, store, notificationService)
		schedulerService := scheduler.NewService(cfg, reportingService)

		if err := schedulerService.Start(); err != nil {
			logrus.Fatalf("Failed to start scheduler: %v", err)
		}
		defer schedulerService.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logrus.Infof("Received %s, shutting down server...", sig)
	case err := <-errCh:
		logrus.Fatalf("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
