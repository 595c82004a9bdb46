package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment   string `default:"dev"`
	ListenAddress string `split_words:"true" default:":8080"`

	APIAllowedOrigin string `split_words:"true" default:"*"`

	// The static key required to mutate the payment method catalog
	ManagementAPIKey string `split_words:"true" required:"true"`

	PostgresDSN string `split_words:"true" required:"true"`

	// The hosted card-entry gateway the session lifecycle talks to
	GatewayBaseURL string `split_words:"true" required:"true"`
	GatewayAPIKey  string `split_words:"true" required:"true"`

	// The fee calculator the fee aggregation engine queries for bundles
	FeeCalculatorURL string `split_words:"true" required:"true"`

	// The registry service the PSP catalog is refreshed from
	PSPRegistryURL     string        `envconfig:"psp_registry_url" required:"true"`
	PSPRefreshInterval time.Duration `envconfig:"psp_refresh_interval" default:"12h"`

	ClientTimeout time.Duration `split_words:"true" default:"10s"`

	// Base URL of the checkout frontend the gateway redirects back to.
	// The outcome and cancel suffixes are resolved against it.
	CheckoutBaseURL       string `split_words:"true" required:"true"`
	CheckoutOutcomeSuffix string `split_words:"true" default:"/outcome"`
	CheckoutCancelSuffix  string `split_words:"true" default:"/cancel"`

	// Template of the gateway notification URL; '{orderId}' and '{paymentMethodId}'
	// are substituted per session.
	SessionNotificationURL string        `split_words:"true" required:"true"`
	SessionTTL             time.Duration `envconfig:"session_ttl" default:"15m"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("cs", config); err != nil {
		return nil, err
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	env := strings.ToLower(config.Environment)
	return env == "prod" || env == "production"
}
