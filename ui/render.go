package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/tailored-agentic-units/apoteker/core/protocol"
)

// Labels shown above each turn.
const (
	userLabel  = "You"
	modelLabel = "Pharmacist"
)

// turnRenderer formats transcript turns for a given width. Model turns are
// rendered as markdown; user turns are wrapped plain text.
type turnRenderer struct {
	width    int
	markdown *glamour.TermRenderer
}

func newTurnRenderer(width int) *turnRenderer {
	if width < 20 {
		width = 20
	}
	r := &turnRenderer{width: width}

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(MarkdownTheme),
		glamour.WithWordWrap(width-2),
	)
	if err == nil {
		r.markdown = md
	}
	return r
}

func (r *turnRenderer) renderTurn(turn protocol.Turn) string {
	var b strings.Builder

	switch turn.Role {
	case protocol.RoleModel:
		b.WriteString(modelLabelStyle.Render(modelLabel))
		b.WriteString("\n")
		b.WriteString(r.renderMarkdown(turn.Text))
	default:
		b.WriteString(userLabelStyle.Render(userLabel))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(r.width).Render(turn.Text))
	}
	return b.String()
}

func (r *turnRenderer) renderMarkdown(text string) string {
	if r.markdown == nil {
		return lipgloss.NewStyle().Width(r.width).Render(text)
	}
	out, err := r.markdown.Render(text)
	if err != nil {
		return lipgloss.NewStyle().Width(r.width).Render(text)
	}
	return strings.Trim(out, "\n")
}

// renderTranscript renders every turn, seed turns included, separated by a
// blank line.
func (r *turnRenderer) renderTranscript(turns []protocol.Turn) string {
	parts := make([]string, 0, len(turns))
	for _, turn := range turns {
		parts = append(parts, r.renderTurn(turn))
	}
	return strings.Join(parts, "\n\n")
}

// lastModelText returns the text of the most recent model turn.
func lastModelText(turns []protocol.Turn) (string, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == protocol.RoleModel {
			return turns[i].Text, true
		}
	}
	return "", false
}
