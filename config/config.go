package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	// Database
	DatabaseURL string

	// Server
	ServerPort string

	// Stage plans: optional YAML file overriding the built-in plans
	StagePlanPath string

	// Simulation speed multiplier for stage durations (0 disables sleeping)
	SimSpeed float64
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost/ml_orchestrator?sslmode=disable"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		StagePlanPath: getEnv("STAGE_PLAN_PATH", ""),
		SimSpeed:      getEnvFloat("SIM_SPEED", 1.0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
