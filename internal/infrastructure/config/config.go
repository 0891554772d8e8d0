// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/hungryjack/backend/pkg/errors"
)

// AI provider selection
const (
	AIProviderOpenAI  = "openai"
	AIProviderFixture = "fixture"
)

// Shopping list strategy selection
const (
	ShoppingStrategyLocal = "local"
	ShoppingStrategyModel = "model"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	AI        AIConfig        `mapstructure:"ai"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	Nutrition NutritionConfig `mapstructure:"nutrition"`
	Shopping  ShoppingConfig  `mapstructure:"shopping"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AIConfig contains text-generation service configuration
type AIConfig struct {
	Provider    string        `mapstructure:"provider"`
	OpenAIKey   string        `mapstructure:"openai_key"`
	OpenAIModel string        `mapstructure:"openai_model"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	// JSONMode requests schema-constrained output from the API; the
	// substring scan remains as the degraded fallback when disabled or
	// when strict decoding fails.
	JSONMode bool `mapstructure:"json_mode"`
}

// SupabaseConfig contains the remote table store configuration
type SupabaseConfig struct {
	URL        string        `mapstructure:"url"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// NutritionConfig contains the optional external nutrition database
type NutritionConfig struct {
	USDAAPIKey string        `mapstructure:"usda_api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// ShoppingConfig selects the shopping list categorization strategy
type ShoppingConfig struct {
	Strategy string `mapstructure:"strategy"`
	// FallbackToLocal controls the model strategy's failure mode: fall back
	// to the local keyword strategy, or return an empty-but-valid list.
	FallbackToLocal bool `mapstructure:"fallback_to_local"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hungryjack")
	}

	v.SetEnvPrefix("HUNGRYJACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional, defaults plus env cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "HungryJack")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.request_timeout", "90s")
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("ai.provider", AIProviderOpenAI)
	v.SetDefault("ai.openai_model", "gpt-4o")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.max_tokens", 4000)
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("ai.json_mode", true)

	v.SetDefault("supabase.timeout", "15s")

	v.SetDefault("nutrition.base_url", "https://api.nal.usda.gov/fdc/v1")
	v.SetDefault("nutrition.timeout", "10s")

	v.SetDefault("shopping.strategy", ShoppingStrategyLocal)
	v.SetDefault("shopping.fallback_to_local", true)
}

// Validate fails fast on missing credentials and malformed selections.
// Downgrading these at runtime would hide a deployment mistake.
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case AIProviderOpenAI:
		if c.AI.OpenAIKey == "" {
			return apperrors.NewConfigurationError("ai.openai_key is required when ai.provider is openai")
		}
	case AIProviderFixture:
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown ai.provider %q", c.AI.Provider))
	}

	if c.Supabase.URL == "" {
		return apperrors.NewConfigurationError("supabase.url is required")
	}
	if c.Supabase.ServiceKey == "" {
		return apperrors.NewConfigurationError("supabase.service_key is required")
	}

	switch c.Shopping.Strategy {
	case ShoppingStrategyLocal, ShoppingStrategyModel:
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown shopping.strategy %q", c.Shopping.Strategy))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return apperrors.NewConfigurationError("server.port must be between 1 and 65535")
	}

	return nil
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
