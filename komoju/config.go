package komoju

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default endpoint and resource names for the KOMOJU REST API
const (
	DefaultBaseURL    = "https://komoju.com/api"
	DefaultAPIVersion = "v1"

	paymentResource  = "payments"
	customerResource = "customers"
	tokenResource    = "tokens"
	eventResource    = "events"
)

// Config holds KOMOJU API credentials and client settings. It is set
// once at client construction and never mutated afterwards.
type Config struct {
	// API version segment of the endpoint path (e.g. "v1")
	APIVersion string

	// Base URL of the REST API, without the version segment
	BaseURL string

	// SandboxMode indicates the client is operating with test keys
	SandboxMode bool

	// MerchantID is sent as external_order_num on created payments to
	// tie provider callbacks back to the merchant. When empty, a fresh
	// UUID is generated per payment.
	MerchantID string

	// PublishableKey is the client-side API key
	PublishableKey string

	// SecretKey is the server-side API key, used as the basic auth
	// username on every request. Required before any network call.
	SecretKey string

	// Metadata key-value pairs attached to every created resource
	Metadata map[string]string

	// Timeout for each outbound HTTP request
	Timeout time.Duration
}

// DefaultConfig returns a Config pointing at the production endpoint.
// SecretKey must still be filled in by the caller.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:  DefaultAPIVersion,
		BaseURL:     DefaultBaseURL,
		SandboxMode: true,
		Timeout:     30 * time.Second,
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		APIVersion:     getEnv("KOMOJU_API_VERSION", DefaultAPIVersion),
		BaseURL:        getEnv("KOMOJU_BASE_URL", DefaultBaseURL),
		SandboxMode:    getEnvAsBool("KOMOJU_SANDBOX", true),
		MerchantID:     getEnv("KOMOJU_MERCHANT_ID", ""),
		PublishableKey: getEnv("KOMOJU_PUBLISHABLE_KEY", ""),
		SecretKey:      getEnv("KOMOJU_SECRET_KEY", ""),
		Timeout:        time.Duration(getEnvAsInt("KOMOJU_TIMEOUT", 30)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config is usable for network calls
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("KOMOJU_SECRET_KEY is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.APIVersion == "" {
		return fmt.Errorf("API version is required")
	}
	return nil
}

// Helper functions

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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
