package config_test

import (
	"testing"

	"github.com/authly/authly-rhythm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresAuthSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, "https://cdn.hackclub.com/api/v3/new", cfg.CDNURL)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("PORT", "3001")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")
	t.Setenv("BASE_URL", "https://rhythm.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 48, cfg.JWTExpirationHours)
	assert.Equal(t, "https://rhythm.example.com", cfg.BaseURL)
}

func TestLoad_NonNumericExpirationFallsBack(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
}
