package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once at startup
// and read-only afterwards; components receive the sections they need.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Translation TranslationConfig `mapstructure:"translation"`
	Stripe      StripeConfig      `mapstructure:"stripe"`
	Sentry      SentryConfig      `mapstructure:"sentry"`
	Public      PublicConfig      `mapstructure:"public"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	MinConnections int           `mapstructure:"min_connections"`
	MaxLifetime    time.Duration `mapstructure:"max_lifetime"`
	MaxIdleTime    time.Duration `mapstructure:"max_idle_time"`
	HealthCheck    time.Duration `mapstructure:"health_check"`
}

// RedisConfig holds Redis configuration. Redis is optional: when URL is
// empty the translation cache, rate limiter and reconcile queue are disabled.
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	PoolSize int    `mapstructure:"pool_size"`
}

// TranslationConfig holds upstream translation provider credentials.
// Each provider is configured only when its credential/endpoint is present.
type TranslationConfig struct {
	DeepLAPIKey          string        `mapstructure:"deepl_api_key"`
	DeepLAPIURL          string        `mapstructure:"deepl_api_url"`
	LibreTranslateURL    string        `mapstructure:"libretranslate_url"`
	LibreTranslateAPIKey string        `mapstructure:"libretranslate_api_key"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

// StripeConfig holds payment provider configuration. Both keys are optional;
// absence disables the corresponding endpoint with a typed error.
type StripeConfig struct {
	SecretKey     string        `mapstructure:"secret_key"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
	APIURL        string        `mapstructure:"api_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// SentryConfig holds Sentry configuration
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
	Release     string `mapstructure:"release"`
}

// PublicConfig holds the externally visible base URL used for payment
// redirect targets.
type PublicConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// envBindings maps each nested config key to its environment variable.
// Unmarshal only sees keys viper has been told about, so every key must be
// bound explicitly; a key missing here is invisible to Load.
var envBindings = map[string]string{
	"server.port":             "SERVER_PORT",
	"server.read_timeout":     "SERVER_READ_TIMEOUT",
	"server.write_timeout":    "SERVER_WRITE_TIMEOUT",
	"server.shutdown_timeout": "SERVER_SHUTDOWN_TIMEOUT",

	"database.url":             "DATABASE_URL",
	"database.max_connections": "DATABASE_MAX_CONNECTIONS",
	"database.min_connections": "DATABASE_MIN_CONNECTIONS",
	"database.max_lifetime":    "DATABASE_MAX_LIFETIME",
	"database.max_idle_time":   "DATABASE_MAX_IDLE_TIME",
	"database.health_check":    "DATABASE_HEALTH_CHECK",

	"redis.url":       "REDIS_URL",
	"redis.pool_size": "REDIS_POOL_SIZE",

	"translation.deepl_api_key":          "DEEPL_API_KEY",
	"translation.deepl_api_url":          "DEEPL_API_URL",
	"translation.libretranslate_url":     "LIBRETRANSLATE_URL",
	"translation.libretranslate_api_key": "LIBRETRANSLATE_API_KEY",
	"translation.timeout":                "TRANSLATION_TIMEOUT",

	"stripe.secret_key":     "STRIPE_SECRET_KEY",
	"stripe.webhook_secret": "STRIPE_WEBHOOK_SECRET",
	"stripe.api_url":        "STRIPE_API_URL",
	"stripe.timeout":        "STRIPE_TIMEOUT",

	"sentry.dsn":         "SENTRY_DSN",
	"sentry.environment": "SENTRY_ENVIRONMENT",
	"sentry.release":     "SENTRY_RELEASE",

	"public.base_url": "PUBLIC_BASE_URL",
}

// Load loads configuration from .env and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	setDefaults()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// .env file is optional; env vars alone are fine in production
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	applyConfigFile()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Public.BaseURL == "" {
		cfg.Public.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	return &cfg, nil
}

// applyConfigFile copies values read from a .env file onto their nested
// keys. Viper parses env-type files as flat lowercased keys (DATABASE_URL
// becomes "database_url"), which Unmarshal would otherwise never see. Real
// environment variables keep precedence over file values.
func applyConfigFile() {
	for key, env := range envBindings {
		if _, ok := os.LookupEnv(env); ok {
			continue
		}
		fileKey := strings.ToLower(env)
		if viper.InConfig(fileKey) {
			viper.Set(key, viper.Get(fileKey))
		}
	}
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 30*time.Second)

	// Database defaults
	viper.SetDefault("database.max_connections", 25)
	viper.SetDefault("database.min_connections", 2)
	viper.SetDefault("database.max_lifetime", time.Hour)
	viper.SetDefault("database.max_idle_time", 30*time.Minute)
	viper.SetDefault("database.health_check", time.Minute)

	// Redis defaults
	viper.SetDefault("redis.pool_size", 10)

	// Translation defaults
	viper.SetDefault("translation.deepl_api_url", "https://api-free.deepl.com")
	viper.SetDefault("translation.timeout", 10*time.Second)

	// Stripe defaults
	viper.SetDefault("stripe.api_url", "https://api.stripe.com")
	viper.SetDefault("stripe.timeout", 15*time.Second)
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// PaymentEnabled reports whether checkout sessions can be created
func (c *Config) PaymentEnabled() bool {
	return c.Stripe.SecretKey != ""
}

// RedisEnabled reports whether Redis-backed features are available
func (c *Config) RedisEnabled() bool {
	return c.Redis.URL != ""
}
