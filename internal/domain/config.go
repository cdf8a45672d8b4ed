package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Risk     RiskConfig     `mapstructure:"risk"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	RateLimitRPS float64       `mapstructure:"rate_limit_rps"`
	RateBurst    int           `mapstructure:"rate_burst"`
}

// DatasetConfig selects where the curated drug dataset is loaded from.
// Source is one of "embedded", "json", "sqlite", "postgres".
type DatasetConfig struct {
	Source           string `mapstructure:"source"`
	DrugsPath        string `mapstructure:"drugs_path"`        // json source
	InteractionsPath string `mapstructure:"interactions_path"` // json source
	SQLitePath       string `mapstructure:"sqlite_path"`       // sqlite source
	MigrationsPath   string `mapstructure:"migrations_path"`   // postgres source
}

// DatabaseConfig represents Postgres connection configuration for the
// postgres dataset source.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// CacheConfig represents the snapshot cache configuration. With Enabled
// the snapshot lives in Redis; otherwise SnapshotPath selects an optional
// file-based store.
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	SnapshotPath string        `mapstructure:"snapshot_path"`
	RedisURL     string        `mapstructure:"redis_url"`
	SnapshotKey  string        `mapstructure:"snapshot_key"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	PoolSize     int           `mapstructure:"pool_size"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
	Output string `mapstructure:"output"`
}

// RiskConfig tunes the multi-drug risk aggregation path.
type RiskConfig struct {
	MaxWorkers      int `mapstructure:"max_workers"`      // pair evaluation concurrency
	PredictionCache int `mapstructure:"prediction_cache"` // LRU entries, 0 disables
	MaxMedications  int `mapstructure:"max_medications"`  // per request
	MaxAlternatives int `mapstructure:"max_alternatives"` // per flagged pair
}
