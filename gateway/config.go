package gateway

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

const (
	DefaultModel           = "gemini-1.5-flash"
	DefaultAPIKeyEnv       = "GEMINI_API_KEY"
	DefaultTemperature     = 0.4
	DefaultMaxOutputTokens = 500
	DefaultTimeout         = 60 * time.Second
)

// Config holds the generation parameters fixed for the process lifetime.
// The API key itself is never read from a config file; APIKeyEnv names the
// environment variable that carries it.
type Config struct {
	Model           string   `json:"model,omitempty" yaml:"model,omitempty"`
	APIKeyEnv       string   `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	BaseURL         string   `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxOutputTokens int      `json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty"`
	Timeout         Duration `json:"timeout,omitzero" yaml:"timeout,omitempty"`
}

// DefaultConfig returns gemini-1.5-flash at temperature 0.4, 500 output
// tokens and a 60 second timeout.
func DefaultConfig() Config {
	temp := DefaultTemperature
	return Config{
		Model:           DefaultModel,
		APIKeyEnv:       DefaultAPIKeyEnv,
		Temperature:     &temp,
		MaxOutputTokens: DefaultMaxOutputTokens,
		Timeout:         Duration{DefaultTimeout},
	}
}

// Merge applies non-zero values from source into c. A temperature of 0 is
// honoured because it is set through a pointer.
func (c *Config) Merge(source *Config) {
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.APIKeyEnv != "" {
		c.APIKeyEnv = source.APIKeyEnv
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.Temperature != nil {
		temp := *source.Temperature
		c.Temperature = &temp
	}
	if source.MaxOutputTokens > 0 {
		c.MaxOutputTokens = source.MaxOutputTokens
	}
	if source.Timeout.Duration > 0 {
		c.Timeout = source.Timeout
	}
}

// Validate reports the first out-of-range parameter.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if c.Temperature == nil {
		return fmt.Errorf("temperature is required")
	}
	if t := *c.Temperature; t < 0 || t > 1 {
		return fmt.Errorf("temperature %.2f out of range [0,1]", t)
	}
	if c.MaxOutputTokens <= 0 || c.MaxOutputTokens > math.MaxInt32 {
		return fmt.Errorf("max_output_tokens must be in [1,%d], got %d", math.MaxInt32, c.MaxOutputTokens)
	}
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// LookupAPIKey reads the API key from the configured environment variable.
// A missing or blank value is an initialization failure.
func LookupAPIKey(cfg *Config) (string, error) {
	name := cfg.APIKeyEnv
	if name == "" {
		name = DefaultAPIKeyEnv
	}
	key := strings.TrimSpace(os.Getenv(name))
	if key == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrInitialization, name)
	}
	return key, nil
}
