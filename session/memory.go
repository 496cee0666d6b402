package session

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tailored-agentic-units/apoteker/core/protocol"
)

type memorySession struct {
	id          string
	seed        [2]protocol.Turn
	turns       []protocol.Turn
	initialized bool
	mu          sync.RWMutex
}

// NewMemorySession creates a Session backed by an in-memory slice, already
// seeded with the persona pair from cfg. The session is assigned a unique
// UUIDv7 identifier.
func NewMemorySession(cfg *Config) Session {
	s := &memorySession{
		id: uuid.Must(uuid.NewV7()).String(),
		seed: [2]protocol.Turn{
			protocol.NewTurn(protocol.RoleUser, cfg.PersonaPrompt),
			protocol.NewTurn(protocol.RoleModel, cfg.PersonaAck),
		},
	}
	s.Initialize()
	return s
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.turns = append(s.turns, s.seed[:]...)
	s.initialized = true
}

func (s *memorySession) AppendUserTurn(text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, protocol.NewTurn(protocol.RoleUser, text))
	return len(s.turns), nil
}

func (s *memorySession) AppendModelTurn(text string) error {
	if text == "" {
		return ErrEmptyModelTurn
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, protocol.NewTurn(protocol.RoleModel, text))
	return nil
}

func (s *memorySession) Snapshot() []protocol.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]protocol.Turn, len(s.turns))
	copy(copied, s.turns)
	return copied
}

func (s *memorySession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}
