package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("LANDING_ENVIRONMENT", "development")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultTrackingEndpoint, cfg.TrackingEndpoint)
	assert.Equal(t, DefaultIPLookupServices, cfg.IPLookupServices)
	assert.Equal(t, DefaultIPLookupTimeout, cfg.IPLookupTimeout)
	assert.False(t, cfg.ServerIPLookup)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.AllowedOrigins)
	assert.False(t, cfg.TrackingEnabled())
	assert.False(t, cfg.R2Configured())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LANDING_ENVIRONMENT", "development")
	t.Setenv("LANDING_SERVER_PORT", "9090")
	t.Setenv("LANDING_API_HOST", "https://crm.example.com/")
	t.Setenv("LANDING_CLIENT_ID", "client-1")
	t.Setenv("LANDING_TRACKING_CLIENT_ID", "tracker-1")
	t.Setenv("LANDING_IP_LOOKUP_SERVICES", "https://a.example.com,https://b.example.com")
	t.Setenv("LANDING_IP_LOOKUP_TIMEOUT", "750ms")
	t.Setenv("LANDING_SERVER_IP_LOOKUP", "true")
	t.Setenv("LANDING_DEFAULT_LANGUAGE", "es")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "https://crm.example.com", cfg.APIHost, "trailing slash is trimmed")
	assert.Equal(t, "client-1", cfg.ClientID)
	assert.True(t, cfg.TrackingEnabled())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.IPLookupServices)
	assert.Equal(t, 750*time.Millisecond, cfg.IPLookupTimeout)
	assert.True(t, cfg.ServerIPLookup)
	assert.Equal(t, "es", cfg.DefaultLanguage)
}

func TestFromEnvValidation(t *testing.T) {
	t.Run("InvalidEnvironment", func(t *testing.T) {
		t.Setenv("LANDING_ENVIRONMENT", "staging")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("InvalidAPIHost", func(t *testing.T) {
		t.Setenv("LANDING_ENVIRONMENT", "development")
		t.Setenv("LANDING_API_HOST", "not a url")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("ProductionRequiresCredentials", func(t *testing.T) {
		t.Setenv("LANDING_ENVIRONMENT", "production")
		t.Setenv("LANDING_API_HOST", "https://crm.example.com")
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LANDING_CLIENT_ID")
		assert.Contains(t, err.Error(), "LANDING_API_KEY")
		assert.NotContains(t, err.Error(), "LANDING_API_HOST")
	})

	t.Run("ProductionWithCredentials", func(t *testing.T) {
		t.Setenv("LANDING_ENVIRONMENT", "production")
		t.Setenv("LANDING_API_HOST", "https://crm.example.com")
		t.Setenv("LANDING_CLIENT_ID", "client-1")
		t.Setenv("LANDING_API_KEY", "key-1")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestR2Configured(t *testing.T) {
	cfg := &Config{R2AccountID: "acc", R2AccessKeyID: "id", R2SecretAccessKey: "secret"}
	assert.False(t, cfg.R2Configured())

	cfg.R2BucketName = "media"
	assert.True(t, cfg.R2Configured())
}
