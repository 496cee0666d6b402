package protocol

import (
	"errors"
	"fmt"
	"slices"
)

// Role identifies the sender of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ErrInvalidRole is returned when a turn carries a role other than user or model.
var ErrInvalidRole = errors.New("invalid turn role")

// ValidRoles returns the roles a Turn may carry.
func ValidRoles() []Role {
	return []Role{RoleUser, RoleModel}
}

// IsValid reports whether r is one of the two supported roles.
func (r Role) IsValid() bool {
	return slices.Contains(ValidRoles(), r)
}

// Turn is one role-tagged message in a conversation. Turns are values: once
// appended to a transcript they are never modified.
type Turn struct {
	Role Role   `json:"role" yaml:"role"`
	Text string `json:"text" yaml:"text"`
}

// NewTurn creates a Turn with the given role and text.
//
// Example:
//
//	turn := protocol.NewTurn(protocol.RoleUser, "What is ibuprofen used for?")
func NewTurn(role Role, text string) Turn {
	return Turn{Role: role, Text: text}
}

// Validate checks the turn's role.
func (t Turn) Validate() error {
	if !t.Role.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, t.Role)
	}
	return nil
}

// ValidateTranscript checks every turn in order and reports the first
// integrity violation with its index.
func ValidateTranscript(turns []Turn) error {
	for i, t := range turns {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("turn %d: %w", i, err)
		}
	}
	return nil
}
