// Package config loads and validates the server configuration via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/drug-interaction-server/internal/domain"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	// Set configuration file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/drug-interaction-server/")

	// Set environment variable prefix and enable automatic env binding
	viper.SetEnvPrefix("DRUGGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	m.setDefaults()

	// Read configuration file (optional - will use defaults and env vars if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	// Unmarshal configuration into struct
	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.rate_limit_rps", 50.0)
	viper.SetDefault("server.rate_burst", 100)

	// Dataset defaults
	viper.SetDefault("dataset.source", "embedded")
	viper.SetDefault("dataset.drugs_path", "")
	viper.SetDefault("dataset.interactions_path", "")
	viper.SetDefault("dataset.sqlite_path", "")
	viper.SetDefault("dataset.migrations_path", "migrations")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.database", "druggraph")
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_conns", 25)
	viper.SetDefault("database.min_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")
	viper.SetDefault("database.conn_max_idle_time", "30m")

	// Cache defaults
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.snapshot_path", "")
	viper.SetDefault("cache.redis_url", "redis://localhost:6379")
	viper.SetDefault("cache.snapshot_key", "druggraph:snapshot")
	viper.SetDefault("cache.default_ttl", "24h")
	viper.SetDefault("cache.max_retries", 3)
	viper.SetDefault("cache.pool_size", 10)
	viper.SetDefault("cache.pool_timeout", "4s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")

	// Risk analysis defaults
	viper.SetDefault("risk.max_workers", 4)
	viper.SetDefault("risk.prediction_cache", 1024)
	viper.SetDefault("risk.max_medications", 20)
	viper.SetDefault("risk.max_alternatives", 3)
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetDatasetConfig returns dataset source configuration
func (m *Manager) GetDatasetConfig() *domain.DatasetConfig {
	return &m.config.Dataset
}

// GetCacheConfig returns snapshot cache configuration
func (m *Manager) GetCacheConfig() *domain.CacheConfig {
	return &m.config.Cache
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	// Validate server configuration
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	// Validate dataset source selection
	switch config.Dataset.Source {
	case "embedded":
	case "json":
		if config.Dataset.DrugsPath == "" || config.Dataset.InteractionsPath == "" {
			return fmt.Errorf("json dataset source requires drugs_path and interactions_path")
		}
	case "sqlite":
		if config.Dataset.SQLitePath == "" {
			return fmt.Errorf("sqlite dataset source requires sqlite_path")
		}
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if config.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if config.Database.Username == "" {
			return fmt.Errorf("database username is required")
		}
	default:
		return fmt.Errorf("invalid dataset source: %s", config.Dataset.Source)
	}

	// Validate cache configuration
	if config.Cache.Enabled && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when the snapshot cache is enabled")
	}

	// Validate risk analysis configuration
	if config.Risk.MaxWorkers < 0 {
		return fmt.Errorf("invalid risk max_workers: %d", config.Risk.MaxWorkers)
	}
	if config.Risk.MaxMedications < 0 {
		return fmt.Errorf("invalid risk max_medications: %d", config.Risk.MaxMedications)
	}

	// Validate logging configuration
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(viper.GetString("environment")) == "production"
}

// IsDevelopment returns true if running in development mode
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(viper.GetString("environment"))
	return env == "development" || env == "dev" || env == ""
}
