package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	config := NewConfigFromFile("nonexistent.yaml")
	require.NotNil(t, config)

	assert.Equal(t, "stargazer-api", config.AppName)
	assert.Equal(t, "1.0.0", config.AppVersion)
	assert.Equal(t, "development", config.AppEnv)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, 30, config.RequestTimeoutSeconds)
	assert.Equal(t, 30*time.Second, config.RequestTimeout())
	assert.True(t, config.IsDevelopment())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	os.Setenv("APP_NAME", "test-app")
	os.Setenv("APP_ENV", "production")
	os.Setenv("PORT", "9090")
	os.Setenv("DARKSKY_API_KEY", "test-key")
	os.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	defer func() {
		os.Unsetenv("APP_NAME")
		os.Unsetenv("APP_ENV")
		os.Unsetenv("PORT")
		os.Unsetenv("DARKSKY_API_KEY")
		os.Unsetenv("REQUEST_TIMEOUT_SECONDS")
	}()

	config := NewConfigFromFile("nonexistent.yaml")
	require.NotNil(t, config)

	assert.Equal(t, "test-app", config.AppName)
	assert.Equal(t, "production", config.AppEnv)
	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, "test-key", config.DarkSkyAPIKey)
	assert.Equal(t, 5*time.Second, config.RequestTimeout())
	assert.False(t, config.IsDevelopment())
}

func TestConfigFileLoading(t *testing.T) {
	config := NewConfigFromFile("config.yaml")
	require.NotNil(t, config)

	assert.Equal(t, "stargazer-api", config.AppName)
	assert.Equal(t, "https://api.darksky.net/forecast", config.DarkSkyBaseURL)
	assert.NotEmpty(t, config.DatabaseURL)
}
