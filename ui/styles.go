package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary       = lipgloss.Color("#10B981") // Green
	Secondary     = lipgloss.Color("#3B82F6") // Blue
	Error         = lipgloss.Color("#EF4444") // Red
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")
	BorderNormal  = lipgloss.Color("#374151")

	// Markdown style passed to glamour.
	MarkdownTheme = "dark"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	introStyle = lipgloss.NewStyle().
			Foreground(TextSecondary)

	separatorStyle = lipgloss.NewStyle().
			Foreground(BorderNormal)

	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	modelLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	errorStyle = lipgloss.NewStyle().
			Foreground(Error)

	noticeStyle = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)
