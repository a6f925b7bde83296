package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Email    EmailConfig    `mapstructure:"email"`
	Security SecurityConfig `mapstructure:"security"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EmailConfig holds email sending configuration
type EmailConfig struct {
	// Provider is the email provider to use: "sendgrid" or "gmail"
	Provider string `mapstructure:"provider"`
	// FromEmail is the sender address injected into every outbound message
	FromEmail string `mapstructure:"from_email"`
	// SenderName is the display name for the sender (optional)
	SenderName string `mapstructure:"sender_name"`
	// SendGrid holds SendGrid-specific configuration
	SendGrid SendGridConfig `mapstructure:"sendgrid"`
	// Gmail holds Gmail API configuration
	Gmail GmailConfig `mapstructure:"gmail"`
}

// SendGridConfig holds SendGrid API configuration
type SendGridConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// GmailConfig holds Gmail API configuration
type GmailConfig struct {
	// CredentialsJSON is the service account credentials JSON content
	CredentialsJSON string `mapstructure:"credentials_json"`
	// ClientID for OAuth2 token-based auth (alternative to service account)
	ClientID string `mapstructure:"client_id"`
	// ClientSecret for OAuth2 token-based auth
	ClientSecret string `mapstructure:"client_secret"`
	// RefreshToken for OAuth2 token-based auth
	RefreshToken string `mapstructure:"refresh_token"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting"`
}

// RateLimitingConfig holds rate limiting configuration
type RateLimitingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Limit   int    `mapstructure:"limit"`
	Window  string `mapstructure:"window"`
}

// RedisConfig holds Redis configuration (rate-limit counters)
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cyklo2-autoresponder")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("CYKLO2")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for compatibility with existing deployments
	v.BindEnv("email.sendgrid.api_key", "CYKLO2_EMAIL_SENDGRID_API_KEY", "SENDGRID_API_KEY")
	v.BindEnv("email.from_email", "CYKLO2_EMAIL_FROM_EMAIL", "FROM_EMAIL")
	v.BindEnv("server.port", "CYKLO2_SERVER_PORT", "PORT")

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate enforces the settings the server cannot run without, so a broken
// delivery setup never gets as far as opening a listener.
func (c *Config) validate() error {
	if c.Email.FromEmail == "" {
		return fmt.Errorf("FROM_EMAIL is required")
	}

	switch c.Email.Provider {
	case "sendgrid":
		if c.Email.SendGrid.APIKey == "" {
			return fmt.Errorf("SENDGRID_API_KEY is required")
		}
	case "gmail":
		if c.Email.Gmail.CredentialsJSON == "" && c.Email.Gmail.RefreshToken == "" {
			return fmt.Errorf("gmail provider requires credentials_json or a refresh token")
		}
	default:
		return fmt.Errorf("unknown email provider %q", c.Email.Provider)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Email defaults
	v.SetDefault("email.provider", "sendgrid")
	v.SetDefault("email.from_email", "")
	v.SetDefault("email.sender_name", "Autoresponder Cyklo2")

	// Rate limiting defaults
	v.SetDefault("security.rate_limiting.enabled", false)
	v.SetDefault("security.rate_limiting.limit", 30)
	v.SetDefault("security.rate_limiting.window", "1m")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}
