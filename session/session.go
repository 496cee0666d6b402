// Package session holds the conversation transcript for one interactive run.
//
// A transcript always starts with the persona seed pair (a user turn stating
// the assistant's constraints and a model turn acknowledging them). After
// that, turns are only appended.
package session

import (
	"github.com/tailored-agentic-units/apoteker/core/protocol"
)

// Session holds an ordered, append-only sequence of conversation turns.
// Implementations must be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// Initialize seeds the persona pair into an empty transcript. Sessions
	// returned by this package are already seeded, so it is a no-op for them.
	Initialize()
	// AppendUserTurn appends a user turn and returns the new transcript length.
	// Whitespace-only text fails with ErrInvalidInput and leaves the transcript unchanged.
	AppendUserTurn(text string) (int, error)
	// AppendModelTurn appends a model turn. Empty text fails with
	// ErrEmptyModelTurn and leaves the transcript unchanged.
	AppendModelTurn(text string) error
	// Snapshot returns a copy of the transcript in insertion order.
	Snapshot() []protocol.Turn
	// Len returns the number of turns in the transcript.
	Len() int
}
