package ui

import (
	"strings"
)

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	sep := separatorStyle.Render(strings.Repeat("─", max(m.width, 1)))
	return strings.Join([]string{
		titleStyle.Render(Title),
		introStyle.Render(Intro),
		sep,
	}, "\n")
}

func (m Model) renderFooter() string {
	lines := make([]string, 0, footerHeight)

	switch {
	case m.pending:
		lines = append(lines, m.spinner.View()+" "+noticeStyle.Render(ThinkingText))
	case m.status != "" && m.statusError:
		lines = append(lines, errorStyle.Render(m.status))
	case m.status != "":
		lines = append(lines, noticeStyle.Render(m.status))
	default:
		lines = append(lines, "")
	}

	lines = append(lines, m.input.View())
	lines = append(lines, helpStyle.Render(helpText))
	return strings.Join(lines, "\n")
}
