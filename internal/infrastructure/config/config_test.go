package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "identity", cfg.Mongo.Database)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "s3cret",
		"JWT_EXPIRATION":       "15m",
		"ENV":                  "production",
		"REDIS_ADDR":           "localhost:6379",
		"REDIS_DB":             "2",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com,https://b.example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.JWT.Expiration)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestProcess_RequiresSecret(t *testing.T) {
	_, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestProcess_RejectsNonPositiveExpiration(t *testing.T) {
	_, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"JWT_EXPIRATION": "0s",
	}))
	assert.ErrorContains(t, err, "JWT_EXPIRATION")
}
