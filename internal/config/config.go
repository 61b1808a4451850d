package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/conference-checkout/pkg/database"
)

// Storage drivers
const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Events   EventsConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys   []string // Valid API keys for storefront routes
	JWTSecret string   // HMAC secret for admin bearer tokens
}

type StorageConfig struct {
	Driver string
	MySQL  database.Config
}

// EventsConfig points at the broker receiving order events. An empty URL disables publishing.
type EventsConfig struct {
	RabbitMQURL   string
	OrderExchange string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys:   getEnvAsSlice("API_KEYS", []string{"apitest"}),
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
			MySQL: database.Config{
				User:     getEnv("DB_USER", "checkout"),
				Password: getEnv("DB_PASSWORD", ""),
				Host:     getEnv("DB_HOST", "127.0.0.1"),
				Port:     getEnv("DB_PORT", "3306"),
				Name:     getEnv("DB_NAME", "conference_checkout"),
			},
		},
		Events: EventsConfig{
			RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
			OrderExchange: getEnv("ORDER_EXCHANGE", "conference.orders"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required for admin routes")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageMySQL:
		if c.Storage.MySQL.Host == "" || c.Storage.MySQL.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the mysql storage driver")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be memory or mysql)", c.Storage.Driver)
	}

	if c.Events.RabbitMQURL != "" && c.Events.OrderExchange == "" {
		return fmt.Errorf("ORDER_EXCHANGE is required when RABBITMQ_URL is set")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
