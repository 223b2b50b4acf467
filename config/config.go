package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"carbon-planner/core/catalog"
	"carbon-planner/core/estimator"
)

// Config holds the application configuration
type Config struct {
	// Database; empty means the in-memory store
	DatabaseURL string

	// Server
	ServerPort     string
	MetricsEnabled bool

	// Planning inputs
	CatalogPath  string
	DefaultsPath string
	Buffers      estimator.Buffers
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		CatalogPath:  getEnv("CATALOG_PATH", ""),
		DefaultsPath: getEnv("DEFAULTS_PATH", ""),
		Buffers:      estimator.DefaultBuffers(),
	}

	var err error
	if cfg.MetricsEnabled, err = getEnvBool("METRICS_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.Buffers.Overrun, err = getEnvFloat("OVERRUN_BUFFER", cfg.Buffers.Overrun); err != nil {
		return nil, err
	}
	if cfg.Buffers.Pricing, err = getEnvFloat("PRICING_BUFFER", cfg.Buffers.Pricing); err != nil {
		return nil, err
	}
	if cfg.Buffers.CO2SafetyKg, err = getEnvFloat("CO2_SAFETY_BUFFER_KG", cfg.Buffers.CO2SafetyKg); err != nil {
		return nil, err
	}
	if cfg.Buffers.CostVarianceRatio, err = getEnvFloat("COST_VARIANCE_RATIO", cfg.Buffers.CostVarianceRatio); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be caught while parsing
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric, got %q", c.ServerPort)
	}
	if err := c.Buffers.Validate(); err != nil {
		return fmt.Errorf("invalid buffers: %w", err)
	}
	return nil
}

// Catalog returns the catalog at CatalogPath, or the built-in one
func (c *Config) Catalog() (*catalog.Catalog, error) {
	if c.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(c.CatalogPath)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, value)
	}
	return f, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, value)
	}
	return b, nil
}
