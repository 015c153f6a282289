// Package server wires and runs the tracker's HTTP API process.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/meeting-tracker/internal/api"
	"github.com/jonesrussell/meeting-tracker/internal/config"
	"github.com/jonesrussell/meeting-tracker/internal/database"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
	"github.com/jonesrussell/meeting-tracker/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

// StartHTTPServer runs the API server until interrupted. It returns only on
// startup failure; a clean shutdown exits the process.
func StartHTTPServer(cfg *config.Config) error {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting HTTP server",
		logger.Int("port", cfg.Service.Port),
		logger.String("db", cfg.Database.Path))

	db, err := database.NewSQLiteConnection(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	meetingsRepo := database.NewMeetingsRepository(db, log)
	tp := telemetry.NewProvider()

	handler := api.NewHandler(meetingsRepo, cfg.Service.Name, cfg.Service.Version, log)
	srv := api.NewServer(handler, api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, tp.Handler())

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("server stopped gracefully")
	}
	return nil
}
