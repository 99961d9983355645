// Package config loads and validates the runtime configuration.
//
// Values come from process environment variables (optionally seeded from a
// `.env` file) prefixed with VITA_. Nested blocks use "." as the delimiter,
// so VITA_DATABASE.HOST maps to Config.Database.Host.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	envPrefix   = "VITA_"
	ServiceName = "vita-sports"
)

// Config is the root configuration object for the API server.
//
// Pointer blocks are optional and receive defaults in LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Proxy         ProxyConfig          `koanf:"proxy"`
	Storage       StorageConfig        `koanf:"storage"`
	RateLimit     *RateLimitConfig     `koanf:"rate_limit"`
	Cache         CacheConfig          `koanf:"cache"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// Lifetimes are expressed in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig holds the HMAC secret used to sign access tokens.
type AuthConfig struct {
	SecretKey string        `koanf:"secret_key" validate:"required,min=16"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// IntegrationConfig carries credentials for outbound providers.
// An empty ResendAPIKey leaves email delivery disabled.
type IntegrationConfig struct {
	ResendAPIKey      string `koanf:"resend_api_key"`
	AdminEmail        string `koanf:"admin_email" validate:"omitempty,email"`
	EmailFrom         string `koanf:"email_from"`
	NotificationsFrom string `koanf:"notifications_from"`
	ResultsFrom       string `koanf:"results_from"`
}

// EmailConfigured reports whether transactional email can be sent.
func (c IntegrationConfig) EmailConfigured() bool {
	return c.ResendAPIKey != ""
}

// ProxyConfig points the public proxy route at a function backend.
// An empty BackendURL makes every proxied call fall back to mock data.
type ProxyConfig struct {
	BackendURL string        `koanf:"backend_url" validate:"omitempty,url"`
	Timeout    time.Duration `koanf:"timeout"`
}

// StorageConfig describes the S3-compatible bucket used for video uploads.
type StorageConfig struct {
	Endpoint   string        `koanf:"endpoint"`
	AccessKey  string        `koanf:"access_key"`
	SecretKey  string        `koanf:"secret_key"`
	Bucket     string        `koanf:"bucket"`
	UseSSL     bool          `koanf:"use_ssl"`
	PresignTTL time.Duration `koanf:"presign_ttl"`
}

func (c StorageConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// RateLimitConfig configures the Redis token bucket applied to function calls.
type RateLimitConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Capacity       int           `koanf:"capacity" validate:"min=1"`
	RefillTokens   int           `koanf:"refill_tokens" validate:"min=1"`
	RefillInterval time.Duration `koanf:"refill_interval" validate:"min=1ms"`
	TTL            time.Duration `koanf:"ttl"`
	Prefix         string        `koanf:"prefix"`
	KeyStrategy    string        `koanf:"key_strategy" validate:"omitempty,oneof=ip user user_or_ip"`
}

func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled:        true,
		Capacity:       60,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            10 * time.Minute,
		Prefix:         "ratelimit",
		KeyStrategy:    "user_or_ip",
	}
}

type CacheConfig struct {
	LeaderboardTTL time.Duration `koanf:"leaderboard_ttl"`
}

// LoadConfig reads, validates and defaults the configuration. Invalid input
// terminates the process.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load initial env variables")
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal main config")
	}

	mainConfig.applyDefaults()

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	if c.RateLimit == nil {
		c.RateLimit = DefaultRateLimitConfig()
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if c.Proxy.Timeout == 0 {
		c.Proxy.Timeout = 10 * time.Second
	}
	if c.Storage.PresignTTL == 0 {
		c.Storage.PresignTTL = 15 * time.Minute
	}
	if c.Cache.LeaderboardTTL == 0 {
		c.Cache.LeaderboardTTL = 30 * time.Second
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "Vita Sports <onboarding@vitasports.shop>"
	}
	if c.Integration.NotificationsFrom == "" {
		c.Integration.NotificationsFrom = "Vita Sports <notifications@vitasports.shop>"
	}
	if c.Integration.ResultsFrom == "" {
		c.Integration.ResultsFrom = "Vita Sports <results@vitasports.shop>"
	}
}

// IsProduction reports whether demo-only functions must be refused.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
