// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend names accepted by the BACKEND setting.
const (
	BackendSimulator = "simulator"
	BackendQPU       = "qpu"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the history database (always absolute)
	Port     int
	LogLevel string
	DevMode  bool

	Backend    string  // simulator or qpu
	QPUBaseURL string
	QPUToken   string
	NoiseGamma float64 // simulator amplitude damping probability per qubit

	Calibration CalibrationConfig
}

// CalibrationConfig holds the periodic backend calibration settings
type CalibrationConfig struct {
	Enabled  bool
	Schedule string // cron expression (robfig/cron, with seconds field)
	Outcomes int    // outcome range used for calibration batches
	Shots    int    // shots per calibration batch
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("QRAND_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:    absDataDir,
		Port:       getEnvAsInt("PORT", 8080),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DevMode:    getEnvAsBool("DEV_MODE", false),
		Backend:    getEnv("BACKEND", BackendSimulator),
		QPUBaseURL: getEnv("QPU_URL", ""),
		QPUToken:   getEnv("QPU_TOKEN", ""),
		NoiseGamma: getEnvAsFloat("NOISE_GAMMA", 0),
		Calibration: CalibrationConfig{
			Enabled:  getEnvAsBool("CALIBRATION_ENABLED", true),
			Schedule: getEnv("CALIBRATION_SCHEDULE", "0 0 * * * *"), // hourly
			Outcomes: getEnvAsInt("CALIBRATION_OUTCOMES", 8),
			Shots:    getEnvAsInt("CALIBRATION_SHOTS", 1024),
		},
	}

	if cfg.Backend != BackendSimulator && cfg.Backend != BackendQPU {
		return nil, fmt.Errorf("invalid BACKEND %q (must be %s or %s)", cfg.Backend, BackendSimulator, BackendQPU)
	}
	if cfg.Backend == BackendQPU && cfg.QPUBaseURL == "" {
		return nil, fmt.Errorf("QPU_URL is required when BACKEND=%s", BackendQPU)
	}

	return cfg, nil
}

// HistoryDBPath returns the path of the draw history database
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
