package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned when no Gemini credential is configured and
// the mock provider is not requested.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY must be set")

type Config struct {
	Port string

	GeminiAPIKey    string
	ModelName       string
	ProviderTimeout time.Duration
	UseMockLLM      bool // true = scripted provider, no credential needed

	LogLevel  string
	LogPretty bool

	CORSOrigin string
}

// env var name for each key
var bindings = map[string]string{
	"port":             "PORT",
	"gemini_api_key":   "GEMINI_API_KEY",
	"model_name":       "TINA_MODEL_NAME",
	"provider_timeout": "TINA_PROVIDER_TIMEOUT",
	"use_mock_llm":     "TINA_USE_MOCK_LLM",
	"log_level":        "TINA_LOG_LEVEL",
	"log_pretty":       "TINA_LOG_PRETTY",
	"cors_origin":      "TINA_CORS_ORIGIN",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("model_name", "gemini-2.0-flash")
	v.SetDefault("provider_timeout", 60*time.Second)
	v.SetDefault("use_mock_llm", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("cors_origin", "*")
}

// Load reads an optional .env file and the environment, then builds the
// config. v may carry bound command line flags; nil means a fresh instance.
func Load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if v == nil {
		v = viper.New()
	}
	return FromViper(v)
}

// FromViper builds the config from v after binding the environment. Flags
// bound on v by the caller take precedence over the environment.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	cfg := &Config{
		Port: v.GetString("port"),

		GeminiAPIKey:    v.GetString("gemini_api_key"),
		ModelName:       v.GetString("model_name"),
		ProviderTimeout: v.GetDuration("provider_timeout"),
		UseMockLLM:      v.GetBool("use_mock_llm"),

		LogLevel:  v.GetString("log_level"),
		LogPretty: v.GetBool("log_pretty"),

		CORSOrigin: v.GetString("cors_origin"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !c.UseMockLLM && c.GeminiAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %s", c.ProviderTimeout)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
