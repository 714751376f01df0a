package config

import (
	"os"

	"tabular/domain/core"
)

// Config represents the preview server configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds demo data source settings
type DataConfig struct {
	// CSVFile points the preview at a CSV dataset; empty falls back
	// to the built-in fixture dataset.
	CSVFile string
	// DatabaseURL, when set with Query, points the preview at a
	// postgres dataset instead.
	DatabaseURL string
	Query       string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			CSVFile:     getEnvOrDefault("CSV_FILE", ""),
			DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
			Query:       getEnvOrDefault("DATASET_QUERY", ""),
		},
	}
	if config.Data.DatabaseURL != "" && config.Data.Query == "" {
		return nil, core.NewConfigError("config", "DATABASE_URL set without DATASET_QUERY")
	}
	return config, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
