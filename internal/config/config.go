// Package config loads server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the content service.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	History    HistoryConfig    `yaml:"history"`
	Generation GenerationConfig `yaml:"generation"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection.
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// StorageConfig selects the template repository backend.
type StorageConfig struct {
	// Type is "memory" or "postgres".
	Type        string `yaml:"type"`
	DatabaseURL string `yaml:"database_url"`
}

// HistoryConfig selects the generated-content history backend.
type HistoryConfig struct {
	// Backend is "memory" or "redis".
	Backend        string `yaml:"backend"`
	RedisAddr      string `yaml:"redis_addr"`
	RedisDB        int    `yaml:"redis_db"`
	RetentionLimit int    `yaml:"retention_limit"`
}

// GenerationConfig holds engine tuning knobs.
type GenerationConfig struct {
	// LookupTimeoutSeconds bounds each external dynamic-source lookup.
	LookupTimeoutSeconds int `yaml:"lookup_timeout_seconds"`
}

// LookupTimeout returns the configured lookup timeout as a duration.
func (c GenerationConfig) LookupTimeout() time.Duration {
	return time.Duration(c.LookupTimeoutSeconds) * time.Second
}

// Load reads and parses the configuration file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) before reading env vars, so secrets can
// live in .env locally and in real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		if loaded, err := Load(path); err == nil {
			cfg = loaded
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Storage.Type = "postgres"
		cfg.Storage.DatabaseURL = dsn
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.History.Backend = "redis"
		cfg.History.RedisAddr = addr
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "memory"
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = "memory"
	}
	if cfg.History.RetentionLimit == 0 {
		cfg.History.RetentionLimit = 500
	}
	if cfg.Generation.LookupTimeoutSeconds == 0 {
		cfg.Generation.LookupTimeoutSeconds = 2
	}
}
