package komoju

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://komoju.com/api", cfg.BaseURL)
	assert.Equal(t, "v1", cfg.APIVersion)
	assert.True(t, cfg.SandboxMode)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KOMOJU_SECRET_KEY", "sk_test_env")
	t.Setenv("KOMOJU_MERCHANT_ID", "merchant-env")
	t.Setenv("KOMOJU_BASE_URL", "https://sandbox.example.com/api")
	t.Setenv("KOMOJU_TIMEOUT", "10")
	t.Setenv("KOMOJU_SANDBOX", "false")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "sk_test_env", cfg.SecretKey)
	assert.Equal(t, "merchant-env", cfg.MerchantID)
	assert.Equal(t, "https://sandbox.example.com/api", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.False(t, cfg.SandboxMode)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("KOMOJU_SECRET_KEY", "sk_test_env")
	t.Setenv("KOMOJU_TIMEOUT", "not-a-number")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.Equal(t, 30*time.Second, cfg.Timeout, "unparseable timeout falls back to default")
}

func TestLoadFromEnv_MissingSecretKey(t *testing.T) {
	t.Setenv("KOMOJU_SECRET_KEY", "")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing secret key", func(c *Config) { c.SecretKey = "" }, true},
		{"missing base URL", func(c *Config) { c.BaseURL = "" }, true},
		{"missing API version", func(c *Config) { c.APIVersion = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
