// Package chat runs the question/answer cycle: it owns the session, sends
// each question with the prior transcript to the gateway, and appends the
// reply.
//
//	a, err := chat.New(&cfg, gw)
//	result, err := a.Ask(ctx, "What is ibuprofen used for?")
//
// The user turn is appended before the gateway is called and the model turn
// only after it succeeds. A failed call leaves the user turn unanswered in
// the transcript; the next Ask simply continues from there.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/apoteker/core/protocol"
	"github.com/tailored-agentic-units/apoteker/gateway"
	"github.com/tailored-agentic-units/apoteker/observability"
	"github.com/tailored-agentic-units/apoteker/session"
)

// Result holds the outcome of a successful Ask.
type Result struct {
	Reply    string        // Model reply appended to the transcript.
	TurnID   string        // Correlates log events for this interaction.
	Turns    int           // Transcript length after the model turn.
	Duration time.Duration // Time spent waiting on the gateway.
}

// Option configures an Assistant after config-driven initialization.
type Option func(*Assistant)

// WithSession overrides the config-created session. It is initialized by New
// if it has not been already.
func WithSession(s session.Session) Option {
	return func(a *Assistant) { a.session = s }
}

// WithObserver overrides the config-selected observer.
func WithObserver(o observability.Observer) Option {
	return func(a *Assistant) { a.observer = o }
}

// WithStateHook registers fn to be called on every state transition.
func WithStateHook(fn func(State)) Option {
	return func(a *Assistant) { a.onState = fn }
}

// Assistant drives one conversation. At most one Ask may be in flight.
type Assistant struct {
	gateway  gateway.Gateway
	session  session.Session
	observer observability.Observer
	onState  func(State)

	mu    sync.Mutex
	busy  bool
	state State
}

// New creates an Assistant with a freshly seeded session. The gateway is
// shared and never stores the session.
func New(cfg *Config, gw gateway.Gateway, opts ...Option) (*Assistant, error) {
	if gw == nil {
		return nil, ErrNoGateway
	}

	sesh, err := session.New(&cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	name := cfg.Observer
	if name == "" {
		name = observability.NameSlog
	}
	observer, err := observability.GetObserver(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create observer: %w", err)
	}

	a := &Assistant{
		gateway:  gw,
		session:  sesh,
		observer: observer,
	}

	for _, opt := range opts {
		opt(a)
	}
	a.session.Initialize()

	return a, nil
}

// SessionID returns the identifier of the owned session.
func (a *Assistant) SessionID() string {
	return a.session.ID()
}

// Transcript returns a snapshot of the conversation for rendering.
func (a *Assistant) Transcript() []protocol.Turn {
	return a.session.Snapshot()
}

// State reports the current position in the Ask cycle.
func (a *Assistant) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Ask submits one question. Whitespace-only text returns
// session.ErrInvalidInput without touching the transcript or the network.
// Gateway failures are returned as *gateway.InferenceError; the transcript
// then ends with the unanswered user turn.
func (a *Assistant) Ask(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		a.observer.OnEvent(ctx, observability.NewEvent(EventAskRejected, observability.LevelVerbose, "chat.Ask",
			map[string]any{"reason": "empty input"}))
		return nil, session.ErrInvalidInput
	}

	if err := a.acquire(); err != nil {
		a.observer.OnEvent(ctx, observability.NewEvent(EventAskRejected, observability.LevelWarning, "chat.Ask",
			map[string]any{"reason": "busy"}))
		return nil, err
	}
	defer a.release()

	turnID := uuid.Must(uuid.NewV7()).String()
	ctx = observability.WithCorrelation(ctx, observability.Correlation{
		SessionID: a.session.ID(),
		TurnID:    turnID,
	})

	// The gateway receives the transcript as it was before this question.
	history := a.session.Snapshot()

	a.observer.OnEvent(ctx, observability.NewEvent(EventAskStart, observability.LevelInfo, "chat.Ask",
		map[string]any{
			"history_length": len(history),
			"text_length":    len(text),
		}))

	n, err := a.session.AppendUserTurn(text)
	if err != nil {
		return nil, err
	}
	a.transition(StateUserTurnAppended)
	a.observer.OnEvent(ctx, observability.NewEvent(EventUserAppended, observability.LevelVerbose, "chat.Ask",
		map[string]any{"turns": n}))

	a.transition(StateAwaitingModelResponse)
	start := time.Now()
	reply, err := a.gateway.GenerateReply(ctx, history, text)
	elapsed := time.Since(start)
	if err == nil {
		if appendErr := a.session.AppendModelTurn(reply); appendErr != nil {
			err = &gateway.InferenceError{Kind: gateway.ErrEmptyResponse, Err: appendErr}
		}
	}
	if err != nil {
		a.transition(StateFailedNoAppend)
		a.observer.OnEvent(ctx, observability.NewEvent(EventAskFailed, observability.LevelWarning, "chat.Ask",
			map[string]any{
				"error":       err.Error(),
				"turns":       a.session.Len(),
				"duration_ms": elapsed.Milliseconds(),
			}))
		return nil, err
	}

	a.transition(StateModelTurnAppended)
	result := &Result{
		Reply:    reply,
		TurnID:   turnID,
		Turns:    a.session.Len(),
		Duration: elapsed,
	}

	a.observer.OnEvent(ctx, observability.NewEvent(EventModelAppended, observability.LevelInfo, "chat.Ask",
		map[string]any{
			"turns":        result.Turns,
			"reply_length": len(reply),
			"duration_ms":  elapsed.Milliseconds(),
		}))

	return result, nil
}

func (a *Assistant) acquire() error {
	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return ErrBusy
	}
	a.busy = true
	a.mu.Unlock()

	a.transition(StateAwaitingInput)
	return nil
}

func (a *Assistant) release() {
	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()

	a.transition(StateIdle)
}

func (a *Assistant) transition(s State) {
	a.mu.Lock()
	a.state = s
	hook := a.onState
	a.mu.Unlock()

	if hook != nil {
		hook(s)
	}
}

// IsInferenceError reports whether err came from the gateway call, as opposed
// to input validation or concurrency rejection.
func IsInferenceError(err error) bool {
	var ie *gateway.InferenceError
	return errors.As(err, &ie)
}
