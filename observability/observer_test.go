package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/tailored-agentic-units/apoteker/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observability.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observability.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observability.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observability.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  slog.Level
	}{
		{name: "verbose maps to Debug", level: observability.LevelVerbose, want: slog.LevelDebug},
		{name: "info maps to Info", level: observability.LevelInfo, want: slog.LevelInfo},
		{name: "warning maps to Warn", level: observability.LevelWarning, want: slog.LevelWarn},
		{name: "error maps to Error", level: observability.LevelError, want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewEvent_Timestamp(t *testing.T) {
	ev := observability.NewEvent("chat.ask.start", observability.LevelInfo, "test", nil)

	if ev.Timestamp.IsZero() {
		t.Error("NewEvent should stamp the current time")
	}
	if ev.Type != "chat.ask.start" || ev.Source != "test" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestMultiObserver_NilFiltering(t *testing.T) {
	var events1, events2 []observability.Event
	multi := observability.NewMultiObserver(nil, &captureObserver{events: &events1}, nil, &captureObserver{events: &events2})

	multi.OnEvent(context.Background(), observability.NewEvent("test.event", observability.LevelInfo, "test", nil))

	if len(events1) != 1 || len(events2) != 1 {
		t.Errorf("got %d and %d events, want 1 each", len(events1), len(events2))
	}
}

func TestCombine(t *testing.T) {
	var events []observability.Event
	one := &captureObserver{events: &events}

	if _, ok := observability.Combine().(observability.NoOpObserver); !ok {
		t.Error("Combine() should return NoOpObserver")
	}
	if _, ok := observability.Combine(nil, nil).(observability.NoOpObserver); !ok {
		t.Error("Combine(nil, nil) should return NoOpObserver")
	}
	if got := observability.Combine(nil, one); got != observability.Observer(one) {
		t.Errorf("Combine with one sink should return it, got %T", got)
	}
	if _, ok := observability.Combine(one, one).(*observability.MultiObserver); !ok {
		t.Error("Combine with two sinks should return a MultiObserver")
	}
}

func TestCombine_SlogSinksBothReceive(t *testing.T) {
	var text, jsonl bytes.Buffer
	obs := observability.Combine(
		observability.NewSlogObserver(slog.New(slog.NewTextHandler(&text, nil))),
		observability.NewSlogObserver(slog.New(slog.NewJSONHandler(&jsonl, nil))),
	)

	obs.OnEvent(context.Background(), observability.NewEvent("chat.ask.failed", observability.LevelWarning, "chat.Ask", nil))

	if !strings.Contains(text.String(), "chat.ask.failed") {
		t.Errorf("text sink missing event: %q", text.String())
	}
	if !strings.Contains(jsonl.String(), `"msg":"chat.ask.failed"`) {
		t.Errorf("json sink missing event: %q", jsonl.String())
	}
}

func TestNoOpObserver(t *testing.T) {
	obs := observability.NoOpObserver{}
	obs.OnEvent(context.Background(), observability.NewEvent("test.event", observability.LevelInfo, "test", map[string]any{"k": "v"}))
}

func TestSlogObserver_LevelMapping(t *testing.T) {
	tests := []struct {
		name      string
		level     observability.Level
		minLevel  slog.Level
		expectLog bool
	}{
		{name: "verbose at debug handler", level: observability.LevelVerbose, minLevel: slog.LevelDebug, expectLog: true},
		{name: "verbose at info handler", level: observability.LevelVerbose, minLevel: slog.LevelInfo, expectLog: false},
		{name: "info at info handler", level: observability.LevelInfo, minLevel: slog.LevelInfo, expectLog: true},
		{name: "warning at error handler", level: observability.LevelWarning, minLevel: slog.LevelError, expectLog: false},
		{name: "error at error handler", level: observability.LevelError, minLevel: slog.LevelError, expectLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.minLevel}))

			observability.NewSlogObserver(logger).OnEvent(context.Background(),
				observability.NewEvent("test.event", tt.level, "test", nil))

			if hasOutput := buf.Len() > 0; hasOutput != tt.expectLog {
				t.Errorf("log output = %v, want %v (buf: %q)", hasOutput, tt.expectLog, buf.String())
			}
		})
	}
}

func TestSlogObserver_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := observability.WithCorrelation(context.Background(), observability.Correlation{
		SessionID: "sess-7",
		TurnID:    "turn-42",
	})
	observability.NewSlogObserver(logger).OnEvent(ctx, observability.NewEvent(
		"chat.ask.start", observability.LevelInfo, "chat.Ask",
		map[string]any{"text_length": 27, "history_length": 2},
	))

	output := buf.String()
	for _, want := range []string{"chat.ask.start", "source=chat.Ask", "session_id=sess-7", "turn_id=turn-42", "text_length=27"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if strings.Index(output, "history_length") > strings.Index(output, "text_length") {
		t.Errorf("data attributes should be sorted by key, got: %s", output)
	}
}

func TestSlogObserver_NoCorrelation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	observability.NewSlogObserver(logger).OnEvent(context.Background(),
		observability.NewEvent("test.event", observability.LevelInfo, "test", nil))

	if strings.Contains(buf.String(), "turn_id") || strings.Contains(buf.String(), "session_id") {
		t.Errorf("correlation IDs should be omitted without a context value, got: %s", buf.String())
	}
}

func TestRegistry_GetObserver(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "noop exists", key: observability.NameNoOp},
		{name: "slog exists", key: observability.NameSlog},
		{name: "unknown fails", key: "nonexistent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := observability.GetObserver(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetObserver(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if !tt.wantErr && obs == nil {
				t.Errorf("GetObserver(%q) returned nil observer", tt.key)
			}
		})
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	var events []observability.Event
	observability.RegisterObserver("test-custom", &captureObserver{events: &events})

	obs, err := observability.GetObserver("test-custom")
	if err != nil {
		t.Fatalf("GetObserver failed: %v", err)
	}
	obs.OnEvent(context.Background(), observability.NewEvent("test.event", observability.LevelInfo, "test", nil))

	if len(events) != 1 {
		t.Errorf("received %d events, want 1", len(events))
	}
}

type captureObserver struct {
	events *[]observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	*c.events = append(*c.events, event)
}
