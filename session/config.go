package session

import "strings"

// Default persona seed pair.
const (
	DefaultPersonaPrompt = "I am a pharmacist. Ask questions about medicines. Keep answers short. Refuse questions that are not about medicines."
	DefaultPersonaAck    = "Alright! I will answer your questions about medicines."
)

// Config holds session initialization parameters.
type Config struct {
	PersonaPrompt string `json:"persona_prompt,omitempty" yaml:"persona_prompt,omitempty"`
	PersonaAck    string `json:"persona_ack,omitempty" yaml:"persona_ack,omitempty"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		PersonaPrompt: DefaultPersonaPrompt,
		PersonaAck:    DefaultPersonaAck,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.PersonaPrompt != "" {
		c.PersonaPrompt = source.PersonaPrompt
	}
	if source.PersonaAck != "" {
		c.PersonaAck = source.PersonaAck
	}
}

// New validates the persona and creates a seeded in-memory Session.
func New(cfg *Config) (Session, error) {
	if strings.TrimSpace(cfg.PersonaPrompt) == "" || strings.TrimSpace(cfg.PersonaAck) == "" {
		return nil, ErrEmptyPersona
	}
	return NewMemorySession(cfg), nil
}
