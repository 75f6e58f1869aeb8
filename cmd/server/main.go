// Package main is the entry point for the qrand random number service.
// It wires the sampling core to the configured execution backend
// (in-process simulator or remote QPU), exposes the draw operation over
// HTTP, and runs the periodic calibration job.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/matteo-piccolini/qrand/internal/backend"
	"github.com/matteo-piccolini/qrand/internal/clients/qpu"
	"github.com/matteo-piccolini/qrand/internal/config"
	"github.com/matteo-piccolini/qrand/internal/database"
	"github.com/matteo-piccolini/qrand/internal/modules/history"
	"github.com/matteo-piccolini/qrand/internal/modules/randomness"
	"github.com/matteo-piccolini/qrand/internal/qrng"
	"github.com/matteo-piccolini/qrand/internal/scheduler"
	"github.com/matteo-piccolini/qrand/internal/server"
	"github.com/matteo-piccolini/qrand/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Str("backend", cfg.Backend).Msg("Starting qrand")

	// History database (ledger profile: the draw record is append-only)
	historyDB, err := database.New(database.Config{
		Path:    cfg.HistoryDBPath(),
		Profile: database.ProfileLedger,
		Name:    "history",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history database")
	}
	defer historyDB.Close()

	if err := history.InitSchema(historyDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize history schema")
	}
	historyRepo := history.NewRepository(historyDB.Conn())

	exec, err := buildExecutor(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build executor")
	}

	randomnessService := randomness.NewService(exec, historyRepo, log)

	// Calibration scheduler
	sched := scheduler.New(log)
	if cfg.Calibration.Enabled {
		job := scheduler.NewCalibrationJob(exec, historyRepo, cfg.Calibration, log)
		if err := sched.AddJob(cfg.Calibration.Schedule, job); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Calibration.Schedule).Msg("Failed to register calibration job")
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := server.New(server.Config{
		Log:                log,
		Port:               cfg.Port,
		DevMode:            cfg.DevMode,
		RandomnessHandlers: randomness.NewHandler(randomnessService, log),
		HistoryHandlers:    history.NewHandler(historyRepo, log),
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
	log.Info().Msg("qrand stopped")
}

// buildExecutor selects the execution backend from configuration.
func buildExecutor(cfg *config.Config, log zerolog.Logger) (qrng.Executor, error) {
	switch cfg.Backend {
	case config.BackendQPU:
		return qpu.NewClient(qpu.Config{
			BaseURL: cfg.QPUBaseURL,
			Token:   cfg.QPUToken,
		}, log), nil
	default:
		return backend.NewSimulator(backend.SimulatorConfig{
			Gamma: cfg.NoiseGamma,
		}, log)
	}
}
