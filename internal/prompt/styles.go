package prompt

import "github.com/charmbracelet/lipgloss"

var (
	questionStyle = lipgloss.NewStyle().
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06B6D4")).
			Bold(true)

	choiceStyle = lipgloss.NewStyle()

	instructionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B7280"))
)
