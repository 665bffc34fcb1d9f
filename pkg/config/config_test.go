package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("AUTH_PASSWORD_SCHEME", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("NATS_URL", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.UsesDefaultJWTSecret())

	assert.Equal(t, 3*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "hmac-sha512", cfg.Auth.PasswordScheme)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "*/15 * * * *", cfg.Scheduler.OverdueCron)
}

func TestLoadConfigOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "sqlite driver is lower-cased",
			env:  map[string]string{"DB_DRIVER": "SQLite", "DB_DSN": "file::memory:"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sqlite", cfg.Database.Driver)
				assert.Equal(t, "file::memory:", cfg.Database.DSN)
			},
		},
		{
			name: "custom token lifetime",
			env:  map[string]string{"JWT_TTL": "90m"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 90*time.Minute, cfg.JWT.TTL)
			},
		},
		{
			name: "invalid token lifetime falls back to three hours",
			env:  map[string]string{"JWT_TTL": "soon"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3*time.Hour, cfg.JWT.TTL)
			},
		},
		{
			name: "scheduler can be disabled",
			env:  map[string]string{"SCHEDULER_ENABLED": "false"},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Scheduler.Enabled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigJWTSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.UsesDefaultJWTSecret())
}
