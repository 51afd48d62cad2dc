package config

import (
	"os"
	"strconv"

	"proplens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Analytics AnalyticsConfig
	Export    ExportConfig
}

// DatabaseConfig holds database connection settings. URL is optional: with
// no database configured the server runs on generated demo data.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	UIPort  string
	GinMode string
}

// AnalyticsConfig holds the pipeline constants. The completeness checklist
// size is deliberately not configurable: it is a versioned constant, and an
// environment override would break comparability of stored scores.
type AnalyticsConfig struct {
	// PriceBandLow/Mid/High are the half-open band boundaries in dollars
	PriceBandLow  float64
	PriceBandMid  float64
	PriceBandHigh float64
	// BatchWorkers bounds concurrent record normalization
	BatchWorkers int
}

// ExportConfig holds export artifact settings
type ExportConfig struct {
	ExcelFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			UIPort:  getEnvOrDefault("UI_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Analytics: AnalyticsConfig{
			PriceBandLow:  getEnvFloatOrDefault("PRICE_BAND_LOW", 2_000_000),
			PriceBandMid:  getEnvFloatOrDefault("PRICE_BAND_MID", 3_000_000),
			PriceBandHigh: getEnvFloatOrDefault("PRICE_BAND_HIGH", 4_000_000),
			BatchWorkers:  getEnvIntOrDefault("BATCH_WORKERS", 4),
		},
		Export: ExportConfig{
			ExcelFile: getEnvOrDefault("EXCEL_FILE", "portfolio.xlsx"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Analytics.PriceBandLow >= config.Analytics.PriceBandMid ||
		config.Analytics.PriceBandMid >= config.Analytics.PriceBandHigh {
		return errors.ConfigInvalid("price band boundaries must be strictly increasing")
	}
	if config.Analytics.BatchWorkers < 1 {
		return errors.ConfigInvalid("BATCH_WORKERS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
