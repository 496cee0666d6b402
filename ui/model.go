// Package ui is the terminal front end: a scrolling transcript above a
// single-line question input. The input is disabled while an answer is
// pending, so at most one question is in flight.
package ui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tailored-agentic-units/apoteker/chat"
	"github.com/tailored-agentic-units/apoteker/core/protocol"
)

// Fixed page text.
const (
	Title        = "Apoteker Gemini 💊"
	Intro        = "Ask about medicines and I will give you relevant information."
	Placeholder  = "Ask something about medicine..."
	ThinkingText = "The pharmacist is thinking about the answer..."
	helpText     = "enter send • pgup/pgdn scroll • ctrl+y copy last answer • esc quit"

	headerHeight = 3
	footerHeight = 3
)

// Asker is the part of chat.Assistant the UI depends on.
type Asker interface {
	Ask(ctx context.Context, text string) (*chat.Result, error)
	Transcript() []protocol.Turn
}

// replyMsg carries the outcome of an Ask back into the update loop.
type replyMsg struct {
	result *chat.Result
	err    error
}

// noticeMsg is a transient status line, e.g. after copying.
type noticeMsg struct {
	text    string
	isError bool
}

// Option configures a Model.
type Option func(*Model)

// WithClipboard replaces the clipboard writer (clipboard.WriteAll).
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copy = fn }
}

// Model is the bubbletea model for the chat screen.
type Model struct {
	ctx       context.Context
	assistant Asker
	copy      func(string) error

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *turnRenderer

	turns       []protocol.Turn
	pendingText string
	pending     bool
	status      string
	statusError bool

	width  int
	height int
	ready  bool
}

// New creates the chat screen. ctx bounds every Ask issued from the UI.
func New(ctx context.Context, a Asker, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "› "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = modelLabelStyle

	m := Model{
		ctx:       ctx,
		assistant: a,
		copy:      clipboard.WriteAll,
		input:     ti,
		spinner:   sp,
		turns:     a.Transcript(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+y":
			return m, m.copyLastAnswer()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "enter":
			return m.submit()
		}
		if m.pending {
			return m, nil
		}

	case replyMsg:
		m.pending = false
		m.pendingText = ""
		m.turns = m.assistant.Transcript()
		if msg.err != nil {
			m.setStatus(chat.UserMessage(msg.err), true)
		}
		m.refresh()
		return m, m.input.Focus()

	case noticeMsg:
		m.setStatus(msg.text, msg.isError)
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit sends the current input. Blank input and submissions while an
// answer is pending are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	m.pending = true
	m.pendingText = text
	m.status = ""
	m.input.Reset()
	m.input.Blur()
	m.refresh()

	return m, tea.Batch(m.ask(text), m.spinner.Tick)
}

func (m Model) ask(text string) tea.Cmd {
	a, ctx := m.assistant, m.ctx
	return func() tea.Msg {
		result, err := a.Ask(ctx, text)
		return replyMsg{result: result, err: err}
	}
}

func (m Model) copyLastAnswer() tea.Cmd {
	text, ok := lastModelText(m.turns)
	if !ok {
		return nil
	}
	write := m.copy
	return func() tea.Msg {
		if err := write(text); err != nil {
			return noticeMsg{text: "Copy failed: " + err.Error(), isError: true}
		}
		return noticeMsg{text: "Copied last answer"}
	}
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-headerHeight-footerHeight, 3)

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = max(width-4, 10)
	m.renderer = newTurnRenderer(width)
	m.refresh()
}

// refresh re-renders the transcript, plus the not-yet-confirmed question
// while an answer is pending, and scrolls to the bottom.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	turns := m.turns
	if m.pending {
		turns = append(turns[:len(turns):len(turns)], protocol.NewTurn(protocol.RoleUser, m.pendingText))
	}
	m.viewport.SetContent(m.renderer.renderTranscript(turns))
	m.viewport.GotoBottom()
}

// Pending reports whether an answer is outstanding.
func (m Model) Pending() bool {
	return m.pending
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, a Asker, opts ...Option) error {
	p := tea.NewProgram(New(ctx, a, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
