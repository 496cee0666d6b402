package observability

import (
	"context"
	"log/slog"
)

// Correlation ties an event to the conversation and the question it belongs
// to. Either field may be empty.
type Correlation struct {
	SessionID string
	TurnID    string
}

type correlationKey struct{}

// WithCorrelation returns a child context carrying c. Empty fields in c keep
// the value already present in ctx, so a session can be attached once and a
// turn added per question.
func WithCorrelation(ctx context.Context, c Correlation) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	prev := CorrelationFromContext(ctx)
	if c.SessionID == "" {
		c.SessionID = prev.SessionID
	}
	if c.TurnID == "" {
		c.TurnID = prev.TurnID
	}
	return context.WithValue(ctx, correlationKey{}, c)
}

// CorrelationFromContext returns the correlation stored in ctx, or the zero
// value.
func CorrelationFromContext(ctx context.Context) Correlation {
	if ctx == nil {
		return Correlation{}
	}
	c, _ := ctx.Value(correlationKey{}).(Correlation)
	return c
}

// attrs returns the non-empty fields as log attributes.
func (c Correlation) attrs() []slog.Attr {
	var out []slog.Attr
	if c.SessionID != "" {
		out = append(out, slog.String("session_id", c.SessionID))
	}
	if c.TurnID != "" {
		out = append(out, slog.String("turn_id", c.TurnID))
	}
	return out
}
