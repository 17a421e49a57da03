package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the engine defaults that flags may override per run
type Config struct {
	WindowSize         int
	SpeedPointStrategy string
	LogLevel           string
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		WindowSize:         parseIntOrDefault("DENSITOMETER_WINDOW_SIZE", 11),
		SpeedPointStrategy: getEnvOrDefault("DENSITOMETER_SPEED_POINT", "interpolated"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if cfg.WindowSize < 2 {
		return nil, fmt.Errorf("DENSITOMETER_WINDOW_SIZE must be >= 2 (got %d)", cfg.WindowSize)
	}
	switch cfg.SpeedPointStrategy {
	case "interpolated", "nearest":
	default:
		return nil, fmt.Errorf("invalid DENSITOMETER_SPEED_POINT: %q", cfg.SpeedPointStrategy)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}
