package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	SummaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	KeepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	MulliganStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	ThresholdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	ParamStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
