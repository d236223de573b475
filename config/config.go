package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`       // e.g., ":8080"
	AppEnv             string        `mapstructure:"APP_ENV"`              // "production" switches gin and zap to release settings
	LogLevel           string        `mapstructure:"LOG_LEVEL"`            // zap level name
	ServerWriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"` // generation calls can take a while

	// AI Configuration
	AIProvider        string `mapstructure:"AI_PROVIDER"`    // "gemini" or "openai"
	GeminiAPIKey      string `mapstructure:"API_KEY"`        // Gemini credential
	OpenAIKey         string `mapstructure:"OPENAI_API_KEY"` // API key for OpenAI
	OpenAIBaseURL     string `mapstructure:"OPENAI_BASE_URL"`
	ContentModelID    string `mapstructure:"CONTENT_MODEL_ID"`           // empty selects the provider default
	ImageModelID      string `mapstructure:"IMAGE_MODEL_ID"`             // empty selects the provider default
	ValidateGenerated bool   `mapstructure:"VALIDATE_GENERATED_CONTENT"` // re-check required fields locally

	// Form relay
	FormEndpoint string `mapstructure:"FORM_ENDPOINT"`

	// Preview
	IconOverrideDir string `mapstructure:"ICON_OVERRIDE_DIR"` // <Name>.svg files replacing catalog glyphs

	// ConfigFile is the config.yaml that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":             ":8080",
	"APP_ENV":                    "development",
	"LOG_LEVEL":                  "info",
	"SERVER_WRITE_TIMEOUT":       "2m",
	"AI_PROVIDER":                ProviderGemini,
	"API_KEY":                    "",
	"OPENAI_API_KEY":             "",
	"OPENAI_BASE_URL":            "",
	"CONTENT_MODEL_ID":           "",
	"IMAGE_MODEL_ID":             "",
	"VALIDATE_GENERATED_CONTENT": true,
	"FORM_ENDPOINT":              "https://formspree.io/f/xkozobzb",
	"ICON_OVERRIDE_DIR":          "",
}

// LoadConfig reads configuration from file and environment variables.
// A missing config.yaml is not an error; environment variables and
// defaults cover every key.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	// AutomaticEnv only resolves keys viper already knows about.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.ConfigFile = v.ConfigFileUsed()
	return config, nil
}

// Validate checks the provider selection and its credential.
func (c Config) Validate() error {
	switch c.AIProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("API_KEY is required when AI_PROVIDER is gemini")
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return errors.New("OPENAI_API_KEY is required when AI_PROVIDER is openai")
		}
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q", c.AIProvider)
	}
	if c.ServerWriteTimeout <= 0 {
		return errors.New("SERVER_WRITE_TIMEOUT must be positive")
	}
	return nil
}
