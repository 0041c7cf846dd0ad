package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Vendor      VendorConfig
	Redis       RedisConfig
	OTEL        OTELConfig
	Client      ClientConfig
	Environment string
}

// ServerConfig holds gateway server configuration
type ServerConfig struct {
	Host string
	Port int
}

// VendorConfig holds scheduling-vendor API configuration
type VendorConfig struct {
	APIBaseURL string
	AuthURL    string
	Scope      string
	Audience   string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// ClientConfig holds configuration for callers of the gateway
type ClientConfig struct {
	GatewayURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 3001),
		},
		Vendor: VendorConfig{
			APIBaseURL: getEnv("VENDOR_API_BASE_URL", "https://api-developer-sandbox.zocdoc.com"),
			AuthURL:    getEnv("VENDOR_AUTH_URL", "https://auth-api-developer-sandbox.zocdoc.com/oauth/token"),
			Scope:      getEnv("VENDOR_OAUTH_SCOPE", "external.appointment.read"),
			Audience:   getEnv("VENDOR_OAUTH_AUDIENCE", "https://api-developer-sandbox.zocdoc.com/"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "booking-gateway"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Client: ClientConfig{
			GatewayURL: getEnv("GATEWAY_URL", "http://localhost:3001"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}, nil
}

// ServerAddr returns the gateway listen address
func (c *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
