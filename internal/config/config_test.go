package config_test

import (
	"testing"
	"time"

	"github.com/dom/dungeon-deck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:dev.db")
	t.Setenv("WEBMASTER_NAME", "root")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "file:dev.db", cfg.DatabaseURL)
	assert.Equal(t, "root", cfg.WebmasterName)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing jwt secret",
			env:  map[string]string{"JWT_SECRET": ""},
		},
		{
			name: "unknown driver",
			env:  map[string]string{"JWT_SECRET": "secret", "DATABASE_DRIVER": "oracle"},
		},
		{
			name: "malformed integer",
			env:  map[string]string{"JWT_SECRET": "secret", "JWT_EXPIRATION_HOURS": "soon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
