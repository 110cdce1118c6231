package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/opl-checker/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 60, cfg.Checker.RateLimit)
	assert.Equal(t, time.Minute, cfg.Checker.RateLimitWindow)
	assert.Nil(t, cfg.Database)
	assert.Nil(t, cfg.Redis)
	assert.Nil(t, cfg.Integration)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "opl-checker", cfg.Observability.ServiceName)
	assert.Equal(t, cfg.Primary.Env, cfg.Observability.Environment)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("CHECKER_PRIMARY__ENV", "production")
	t.Setenv("CHECKER_SERVER__PORT", "9000")
	t.Setenv("CHECKER_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CHECKER_CHECKER__RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CHECKER_DATABASE__HOST", "db")
	t.Setenv("CHECKER_DATABASE__USER", "checker")
	t.Setenv("CHECKER_DATABASE__NAME", "checker")
	t.Setenv("CHECKER_REDIS__ADDRESS", "redis:6379")
	t.Setenv("CHECKER_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Checker.RateLimitWindow)

	require.NotNil(t, cfg.Database)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	require.NotNil(t, cfg.Redis)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)

	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "incomplete database", env: map[string]string{"CHECKER_DATABASE__HOST": "db"}},
		{name: "bad contact address", env: map[string]string{
			"CHECKER_INTEGRATION__RESEND_API_KEY": "re_123",
			"CHECKER_INTEGRATION__CONTACT_FROM":   "OpenPowerlifting <noreply@example.com>",
			"CHECKER_INTEGRATION__CONTACT_TO":     "not-an-address",
		}},
		{name: "bad log level", env: map[string]string{"CHECKER_OBSERVABILITY__LOGGING__LEVEL": "loud"}},
		{name: "window too short", env: map[string]string{"CHECKER_CHECKER__RATE_LIMIT_WINDOW": "10ms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestObservabilityConfig_HealthCheckEnabled(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	assert.True(t, cfg.HealthCheckEnabled("redis"))
	assert.False(t, cfg.HealthCheckEnabled("smtp"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("redis"))
}
