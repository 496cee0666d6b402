package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/apoteker/gateway"
	"github.com/tailored-agentic-units/apoteker/observability"
	"github.com/tailored-agentic-units/apoteker/session"
)

// Config holds initialization parameters for the session, the gateway and
// the event sink. Each section delegates to its package's Merge.
type Config struct {
	Session  session.Config `json:"session" yaml:"session"`
	Gateway  gateway.Config `json:"gateway" yaml:"gateway"`
	Observer string         `json:"observer,omitempty" yaml:"observer,omitempty"`
}

// DefaultConfig returns a Config with defaults for all sections.
func DefaultConfig() Config {
	return Config{
		Session:  session.DefaultConfig(),
		Gateway:  gateway.DefaultConfig(),
		Observer: observability.NameSlog,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	c.Session.Merge(&source.Session)
	c.Gateway.Merge(&source.Gateway)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads a JSON or YAML (.yaml, .yml) config file, merges it with
// defaults, and returns the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
