package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL         = "https://openrouter.ai/api/v1"
	DefaultModel          = "openai/gpt-3.5-turbo"
	DefaultTransport      = "http"
	DefaultTimeoutSeconds = 60
	defaultEnvFile        = ".env"
)

// ErrMissingAPIKey is the configuration error raised before any network
// command runs without OPENROUTER_API_KEY.
var ErrMissingAPIKey = errors.New("OPENROUTER_API_KEY not found")

// Config represents the application configuration
type Config struct {
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	LogLevel   string           `env:"ORLAB_LOG_LEVEL" envDefault:"info"`
	LogFormat  string           `env:"ORLAB_LOG_FORMAT" envDefault:"json"`
	LogFile    string           `env:"ORLAB_LOG_FILE"`
	ModelCache string           `env:"ORLAB_MODEL_CACHE"`
}

// OpenRouterConfig holds the OpenRouter API configuration
type OpenRouterConfig struct {
	APIKey            string `env:"API_KEY"`
	APIURL            string `env:"API_URL" envDefault:"https://openrouter.ai/api/v1"`
	Model             string `env:"MODEL" envDefault:"openai/gpt-3.5-turbo"`
	Transport         string `env:"TRANSPORT" envDefault:"http"`
	APITimeoutSeconds int    `env:"TIMEOUT_SECONDS" envDefault:"60"`
	HTTPReferer       string `env:"HTTP_REFERER"`
	XTitle            string `env:"X_TITLE"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		OpenRouter: OpenRouterConfig{
			APIURL:            DefaultAPIURL,
			Model:             DefaultModel,
			Transport:         DefaultTransport,
			APITimeoutSeconds: DefaultTimeoutSeconds,
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load reads dotenv files into the process environment and parses it.
// With no files given, ./.env is loaded when present. Variables already set
// in the environment win over dotenv values.
func Load(envFiles ...string) (Config, error) {
	if err := loadDotEnv(envFiles); err != nil {
		return Config{}, err
	}
	return Parse(nil)
}

// Parse builds a Config from environment. A nil map reads the process
// environment.
func Parse(environment map[string]string) (Config, error) {
	cfg := Default()
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.OpenRouter.APIKey = strings.TrimSpace(cfg.OpenRouter.APIKey)
	cfg.OpenRouter.Transport = strings.ToLower(strings.TrimSpace(cfg.OpenRouter.Transport))
	return cfg, nil
}

func loadDotEnv(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		files = []string{defaultEnvFile}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid for network commands
func (c Config) Validate() error {
	if c.OpenRouter.APIKey == "" {
		return ErrMissingAPIKey
	}

	if strings.TrimSpace(c.OpenRouter.APIURL) == "" {
		return fmt.Errorf("OPENROUTER_API_URL must not be empty")
	}

	if strings.TrimSpace(c.OpenRouter.Model) == "" {
		return fmt.Errorf("OPENROUTER_MODEL must not be empty")
	}

	if c.OpenRouter.APITimeoutSeconds < 0 {
		return fmt.Errorf("api timeout must not be negative, got: %d", c.OpenRouter.APITimeoutSeconds)
	}

	return nil
}

// MaskedAPIKey returns the key with everything but its edges hidden.
func (c Config) MaskedAPIKey() string {
	key := c.OpenRouter.APIKey
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// GetConfigDir returns the per-user state directory.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return ".orlab"
	}
	return filepath.Join(homeDir, ".orlab")
}

// ModelCachePath returns the configured model cache path or the default one.
func (c Config) ModelCachePath() string {
	if p := strings.TrimSpace(c.ModelCache); p != "" {
		return p
	}
	return filepath.Join(GetConfigDir(), "models_cache.json")
}
