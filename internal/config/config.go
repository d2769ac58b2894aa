package config

import (
	"os"
	"strconv"

	"vizier/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Engine   EngineConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// EngineConfig holds the externally supplied scalars the inference engine
// consumes but does not own.
type EngineConfig struct {
	SampleSize           int     // values sampled per column for type detection
	UniquenessThreshold  float64 // distinct ratio at or above which a field is unique
	HierarchyMaxValues   int     // cap on parent values examined during hierarchy detection
	MaxUniqueValues      int     // cap on materialized unique-value sets
	RelationshipDistance float64 // Jaccard threshold for emitting a relationship
	MaxBins              int     // upper bound on bin count for bin:agg specs
	Percentiles          []int   // percentile cut points for descriptive stats
	RecomputeFieldProps  bool    // recompute-on-read flag for field properties
	RecomputeSpecs       bool    // recompute-on-read flag for viz specs
	CacheSize            int     // LRU table cache capacity (datasets)
}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SampleSize:           100,
		UniquenessThreshold:  0.95,
		HierarchyMaxValues:   100,
		MaxUniqueValues:      1000,
		RelationshipDistance: 0.5,
		MaxBins:              20,
		Percentiles:          []int{25, 75},
		CacheSize:            32,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Engine: loadEngineConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadEngineConfig() EngineConfig {
	cfg := DefaultEngineConfig()
	cfg.SampleSize = getEnvIntOrDefault("TYPE_SAMPLE_SIZE", cfg.SampleSize)
	cfg.UniquenessThreshold = getEnvFloatOrDefault("UNIQUENESS_THRESHOLD", cfg.UniquenessThreshold)
	cfg.HierarchyMaxValues = getEnvIntOrDefault("HIERARCHY_MAX_VALUES", cfg.HierarchyMaxValues)
	cfg.MaxUniqueValues = getEnvIntOrDefault("MAX_UNIQUE_VALUES", cfg.MaxUniqueValues)
	cfg.RelationshipDistance = getEnvFloatOrDefault("RELATIONSHIP_DISTANCE", cfg.RelationshipDistance)
	cfg.MaxBins = getEnvIntOrDefault("MAX_BINS", cfg.MaxBins)
	cfg.RecomputeFieldProps = getEnvBoolOrDefault("RECOMPUTE_FIELD_PROPS", false)
	cfg.RecomputeSpecs = getEnvBoolOrDefault("RECOMPUTE_SPECS", true)
	cfg.CacheSize = getEnvIntOrDefault("TABLE_CACHE_SIZE", cfg.CacheSize)
	return cfg
}

func validateConfig(config *Config) error {
	if config.Engine.SampleSize <= 0 {
		return errors.ConfigInvalid("TYPE_SAMPLE_SIZE must be positive")
	}
	if config.Engine.UniquenessThreshold <= 0 || config.Engine.UniquenessThreshold > 1 {
		return errors.ConfigInvalid("UNIQUENESS_THRESHOLD must be in (0, 1]")
	}
	if config.Engine.MaxBins < 2 {
		return errors.ConfigInvalid("MAX_BINS must be at least 2")
	}
	if config.Engine.CacheSize <= 0 {
		return errors.ConfigInvalid("TABLE_CACHE_SIZE must be positive")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
