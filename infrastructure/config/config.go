package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration, populated once at process start
// and threaded through to every component that needs it.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion      string
	ItemsTable     string
	OwnerIndexName string // GSI for owner-scoped listing
	EventBusName   string

	// Identity provider configuration
	UserPoolID       string
	UserPoolClientID string

	// Local-mode token verification (unused in Lambda, where the API Gateway
	// authorizer verifies tokens)
	JWTSecret string
	JWTIssuer string

	// TrustGatewayHeaders allows the identity headers injected by the Lambda
	// entrypoint to bypass in-process token verification. Only safe behind the
	// entrypoint, which strips any inbound copies of those headers first.
	TrustGatewayHeaders bool

	// HTTP surface
	CORSAllowedOrigin string
	MaxBodyBytes      int64

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableTracing bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		ItemsTable:     getEnv("TABLE_NAME", "items"),
		OwnerIndexName: getEnv("OWNER_INDEX_NAME", "userId-index"),
		EventBusName:   getEnv("EVENT_BUS_NAME", ""),

		UserPoolID:       getEnv("USER_POOL_ID", ""),
		UserPoolClientID: getEnv("USER_POOL_CLIENT_ID", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "itemstore-backend"),

		// Defaults on only inside a Lambda runtime
		TrustGatewayHeaders: getEnvBool("TRUST_GATEWAY_HEADERS", os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""),

		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.ItemsTable == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if c.IsProduction() {
		if c.UserPoolID == "" {
			return fmt.Errorf("USER_POOL_ID is required in production")
		}
		if c.UserPoolClientID == "" {
			return fmt.Errorf("USER_POOL_CLIENT_ID is required in production")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
