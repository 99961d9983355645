package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"VITA_PRIMARY.ENV":                  "test",
		"VITA_SERVER.PORT":                  "8080",
		"VITA_SERVER.READ_TIMEOUT":          "30",
		"VITA_SERVER.WRITE_TIMEOUT":         "30",
		"VITA_SERVER.IDLE_TIMEOUT":          "60",
		"VITA_SERVER.CORS_ALLOWED_ORIGINS":  "http://localhost:3000",
		"VITA_DATABASE.HOST":                "localhost",
		"VITA_DATABASE.PORT":                "5432",
		"VITA_DATABASE.USER":                "vita",
		"VITA_DATABASE.PASSWORD":            "secret",
		"VITA_DATABASE.NAME":                "vita",
		"VITA_DATABASE.SSL_MODE":            "disable",
		"VITA_DATABASE.MAX_OPEN_CONNS":      "10",
		"VITA_DATABASE.MAX_IDLE_CONNS":      "5",
		"VITA_DATABASE.CONN_MAX_LIFETIME":   "300",
		"VITA_DATABASE.CONN_MAX_IDLE_TIME":  "60",
		"VITA_REDIS.ADDRESS":                "localhost:6379",
		"VITA_AUTH.SECRET_KEY":              "0123456789abcdef0123",
		"VITA_INTEGRATION.ADMIN_EMAIL":      "admin@vitasports.shop",
		"VITA_PROXY.BACKEND_URL":            "http://localhost:8080",
		"VITA_RATE_LIMIT.ENABLED":           "true",
		"VITA_RATE_LIMIT.CAPACITY":          "5",
		"VITA_RATE_LIMIT.REFILL_TOKENS":     "1",
		"VITA_RATE_LIMIT.REFILL_INTERVAL":   "2s",
		"VITA_OBSERVABILITY.LOGGING.LEVEL":  "debug",
		"VITA_OBSERVABILITY.LOGGING.FORMAT": "console",
	} {
		t.Setenv(k, v)
	}
	t.Setenv("VITA_OBSERVABILITY.HEALTH_CHECKS.ENABLED", "false")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "admin@vitasports.shop", cfg.Integration.AdminEmail)
	assert.False(t, cfg.Integration.EmailConfigured())
	assert.False(t, cfg.Storage.Enabled())

	t.Run("defaults are applied", func(t *testing.T) {
		assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, 10*time.Second, cfg.Proxy.Timeout)
		assert.Equal(t, 30*time.Second, cfg.Cache.LeaderboardTTL)
		assert.Equal(t, "Vita Sports <onboarding@vitasports.shop>", cfg.Integration.EmailFrom)
	})

	t.Run("observability identity is forced", func(t *testing.T) {
		require.NotNil(t, cfg.Observability)
		assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
		assert.Equal(t, "test", cfg.Observability.Environment)
		assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	})

	t.Run("rate limit block is read", func(t *testing.T) {
		require.NotNil(t, cfg.RateLimit)
		assert.True(t, cfg.RateLimit.Enabled)
		assert.Equal(t, 5, cfg.RateLimit.Capacity)
		assert.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
	})
}

func TestObservabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *ObservabilityConfig) {}},
		{
			name:    "unknown level",
			mutate:  func(c *ObservabilityConfig) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "negative slow query threshold",
			mutate:  func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second },
			wantErr: "slow_query_threshold",
		},
		{
			name:    "missing service name",
			mutate:  func(c *ObservabilityConfig) { c.ServiceName = "" },
			wantErr: "service_name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "local"
	assert.Equal(t, "debug", c.GetLogLevel())
	assert.False(t, c.IsProduction())
}
