package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.App.Environment = "test"
	cfg.AI.Provider = AIProviderFixture
	cfg.Supabase.URL = "https://example.supabase.co"
	cfg.Supabase.ServiceKey = "service-key"
	cfg.Shopping.Strategy = ShoppingStrategyLocal
	cfg.Server.Port = 8080
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("openai provider requires key", func(t *testing.T) {
		cfg := validConfig()
		cfg.AI.Provider = AIProviderOpenAI
		assert.Error(t, cfg.Validate())

		cfg.AI.OpenAIKey = "sk-test"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := validConfig()
		cfg.AI.Provider = "llamacpp"
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing supabase url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Supabase.URL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing service key", func(t *testing.T) {
		cfg := validConfig()
		cfg.Supabase.ServiceKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown shopping strategy", func(t *testing.T) {
		cfg := validConfig()
		cfg.Shopping.Strategy = "remote"
		assert.Error(t, cfg.Validate())
	})

	t.Run("port bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())

		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
app:
  environment: test
  log_level: debug
ai:
  provider: fixture
supabase:
  url: https://example.supabase.co
  service_key: service-key
shopping:
  strategy: model
  fallback_to_local: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, AIProviderFixture, cfg.AI.Provider)
	assert.Equal(t, ShoppingStrategyModel, cfg.Shopping.Strategy)
	assert.False(t, cfg.Shopping.FallbackToLocal)

	// Defaults fill the unconfigured sections
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gpt-4o", cfg.AI.OpenAIModel)
	assert.True(t, cfg.AI.JSONMode)
}

func TestLoadFailsFastOnInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
ai:
  provider: openai
supabase:
  url: https://example.supabase.co
  service_key: service-key
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)

	assert.Error(t, err, "openai provider without a key must fail startup")
}
