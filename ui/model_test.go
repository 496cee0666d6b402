package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tailored-agentic-units/apoteker/chat"
	"github.com/tailored-agentic-units/apoteker/core/protocol"
	"github.com/tailored-agentic-units/apoteker/gateway"
)

// fakeAsker mimics chat.Assistant: it appends the user turn, then the reply
// unless err is set.
type fakeAsker struct {
	mu    sync.Mutex
	turns []protocol.Turn
	reply string
	err   error
	asked []string
}

func newFakeAsker() *fakeAsker {
	return &fakeAsker{turns: []protocol.Turn{
		protocol.NewTurn(protocol.RoleUser, "I am a pharmacist."),
		protocol.NewTurn(protocol.RoleModel, "Alright!"),
	}}
}

func (f *fakeAsker) Ask(ctx context.Context, text string) (*chat.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, text)
	f.turns = append(f.turns, protocol.NewTurn(protocol.RoleUser, text))
	if f.err != nil {
		return nil, f.err
	}
	f.turns = append(f.turns, protocol.NewTurn(protocol.RoleModel, f.reply))
	return &chat.Result{Reply: f.reply, Turns: len(f.turns)}, nil
}

func (f *fakeAsker) Transcript() []protocol.Turn {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]protocol.Turn(nil), f.turns...)
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestModel_LoadingBeforeSize(t *testing.T) {
	m := New(context.Background(), newFakeAsker())
	if got := m.View(); got != "Loading..." {
		t.Errorf("got view %q, want Loading...", got)
	}
}

func TestModel_ViewShowsHeaderAndSeedTurns(t *testing.T) {
	m := sized(t, New(context.Background(), newFakeAsker()))

	view := m.View()
	for _, want := range []string{Title, Intro, userLabel, "I am a pharmacist.", modelLabel, helpText} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_EmptySubmitIgnored(t *testing.T) {
	a := newFakeAsker()
	m := sized(t, New(context.Background(), a))

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("blank submission should not issue a command")
	}
	if m.Pending() {
		t.Error("blank submission should not start a request")
	}
	if len(a.asked) != 0 {
		t.Errorf("asker called %d times, want 0", len(a.asked))
	}
}

func TestModel_SubmitAndReply(t *testing.T) {
	a := newFakeAsker()
	a.reply = "Ibuprofen is a pain reliever."
	m := sized(t, New(context.Background(), a))

	m = typeText(t, m, "What is ibuprofen used for?")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	if !m.Pending() {
		t.Fatal("model should be pending after submit")
	}
	if m.input.Focused() {
		t.Error("input should be disabled while pending")
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
	view := m.View()
	if !strings.Contains(view, ThinkingText) {
		t.Error("view should show the thinking indicator")
	}
	if !strings.Contains(view, "What is ibuprofen used for?") {
		t.Error("view should show the pending question")
	}

	// Second enter and typing are ignored while pending.
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter while pending should be ignored")
	}
	m = typeText(t, m, "more")
	if m.input.Value() != "" {
		t.Errorf("typing while pending should be ignored, got %q", m.input.Value())
	}

	m, _ = update(t, m, m.ask("What is ibuprofen used for?")())

	if m.Pending() {
		t.Error("model should not be pending after reply")
	}
	if !m.input.Focused() {
		t.Error("input should be re-enabled after reply")
	}
	if len(m.turns) != 4 {
		t.Fatalf("got %d turns, want 4", len(m.turns))
	}
	if m.turns[3].Text != "Ibuprofen is a pain reliever." {
		t.Errorf("got last turn %+v", m.turns[3])
	}
	if m.status != "" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestModel_FailureShowsMessageAndStaysUsable(t *testing.T) {
	a := newFakeAsker()
	a.err = &gateway.InferenceError{Kind: gateway.ErrTimeout}
	m := sized(t, New(context.Background(), a))

	m = typeText(t, m, "Is aspirin safe?")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, m.ask("Is aspirin safe?")())

	if m.Pending() {
		t.Error("model should not be pending after failure")
	}
	if !m.statusError || m.status != chat.UserMessage(a.err) {
		t.Errorf("got status %q (error=%v)", m.status, m.statusError)
	}
	if !strings.Contains(m.View(), "took too long") {
		t.Error("view should show the timeout message")
	}
	if len(m.turns) != 3 {
		t.Errorf("got %d turns, want 3 (dangling user turn)", len(m.turns))
	}

	a.err = nil
	a.reply = "Aspirin can irritate the stomach."
	m = typeText(t, m, "Is aspirin safe?")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.Pending() {
		t.Fatal("session should accept a new question after failure")
	}
	if m.status != "" {
		t.Errorf("status should clear on submit, got %q", m.status)
	}
}

func TestModel_CopyLastAnswer(t *testing.T) {
	var copied string
	m := sized(t, New(context.Background(), newFakeAsker(), WithClipboard(func(s string) error {
		copied = s
		return nil
	})))

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Fatal("ctrl+y should return a command")
	}
	msg, ok := cmd().(noticeMsg)
	if !ok {
		t.Fatalf("got %T, want noticeMsg", cmd())
	}
	if copied != "Alright!" {
		t.Errorf("copied %q, want last model turn", copied)
	}
	if msg.isError {
		t.Errorf("unexpected error notice %q", msg.text)
	}
}

func TestModel_CopyFailure(t *testing.T) {
	m := sized(t, New(context.Background(), newFakeAsker(), WithClipboard(func(string) error {
		return errors.New("no clipboard")
	})))

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	msg := cmd().(noticeMsg)

	m, _ = update(t, m, msg)
	if !m.statusError || !strings.Contains(m.status, "no clipboard") {
		t.Errorf("got status %q (error=%v)", m.status, m.statusError)
	}
}

func TestModel_Quit(t *testing.T) {
	m := sized(t, New(context.Background(), newFakeAsker()))

	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := update(t, m, tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("%v should quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: got %T, want tea.QuitMsg", key, cmd())
		}
	}
}

func TestLastModelText(t *testing.T) {
	turns := []protocol.Turn{
		protocol.NewTurn(protocol.RoleUser, "a"),
		protocol.NewTurn(protocol.RoleModel, "b"),
		protocol.NewTurn(protocol.RoleUser, "c"),
	}
	if got, ok := lastModelText(turns); !ok || got != "b" {
		t.Errorf("got %q,%v; want b,true", got, ok)
	}
	if _, ok := lastModelText(turns[:1]); ok {
		t.Error("expected no model turn")
	}
}
