// Package gateway translates a conversation transcript into one Gemini
// generateContent call and maps the outcome to reply text or a typed
// InferenceError.
//
// The gateway holds no conversation state. Every call receives the full
// history explicitly:
//
//	reply, err := gw.GenerateReply(ctx, sess.Snapshot(), "What is ibuprofen used for?")
package gateway

import (
	"context"

	"github.com/tailored-agentic-units/apoteker/core/protocol"
)

// Gateway produces the model's reply for a pending user message.
// history holds every turn before the pending one, in order; newUserText is
// sent as the final user content. Implementations make exactly one outbound
// call per invocation and never retry.
type Gateway interface {
	GenerateReply(ctx context.Context, history []protocol.Turn, newUserText string) (string, error)
}
