package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	K8sTimeout time.Duration `env:"K8S_TIMEOUT" default:"30s"`

	Kubeconfig string `env:"KUBECONFIG" default:""`

	// HighUsageThreshold is the utilization percentage above which a node
	// counts as high-usage. The comparison is strictly greater-than.
	HighUsageThreshold float64 `env:"HIGH_USAGE_THRESHOLD" default:"80"`
}

func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		K8sTimeout:         getEnvAsDuration("K8S_TIMEOUT", 30*time.Second),
		Kubeconfig:         getEnv("KUBECONFIG", ""),
		HighUsageThreshold: getEnvAsFloat("HIGH_USAGE_THRESHOLD", 80),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.LogLevel != "debug" && c.LogLevel != "info" &&
		c.LogLevel != "warn" && c.LogLevel != "error" {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}

	if c.HighUsageThreshold < 0 || c.HighUsageThreshold > 100 {
		return fmt.Errorf("invalid high usage threshold: %v (must be between 0 and 100)", c.HighUsageThreshold)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
