package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8288")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "mantis")
	t.Setenv("DB_USER", "mantis")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENVIRONMENT", "test")

	config, err := New()

	require.NoError(t, err)
	assert.Equal(t, 8288, config.ServerPort)
	assert.Equal(t, "localhost", config.DatabaseHost)
	assert.Equal(t, "mantis", config.DatabaseName)
	assert.Equal(t, "test-secret", config.JWTSecret)
	assert.Equal(t, config, GetConfig())
}

func TestNewRejectsMissingPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "0")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := New()
	assert.Error(t, err)
}

func TestNewRequiresJWTSecret(t *testing.T) {
	t.Setenv("SERVER_PORT", "8288")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("JWT_SECRET", "")

	_, err := New()
	assert.Error(t, err)
}
