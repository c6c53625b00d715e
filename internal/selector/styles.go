// Package selector implements the interactive process checklist.
//
// The checklist uses Bubble Tea for the application framework and Lipgloss
// for styling. It renders a paged, filterable, searchable multi-select list
// of processes and returns the stable indices the user checked, or a
// cancellation marker.
package selector

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCursor    = lipgloss.Color("#06B6D4") // Cyan
	colorStatusBg  = lipgloss.Color("#005F87") // Deep blue
	colorCommandBg = lipgloss.Color("#004060") // Darker blue
	colorAccent    = lipgloss.Color("#F59E0B") // Amber
	colorTextDim   = lipgloss.Color("#6B7280") // Dark gray
)

// =============================================================================
// Row Styles
// =============================================================================

var (
	rowStyle = lipgloss.NewStyle()

	rowCursorStyle = lipgloss.NewStyle().
			Foreground(colorCursor).
			Bold(true)

	rowSelectedStyle = lipgloss.NewStyle().
				Reverse(true)

	rowCursorSelectedStyle = lipgloss.NewStyle().
				Foreground(colorCursor).
				Bold(true).
				Reverse(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorTextDim)
)

// =============================================================================
// Chrome Styles
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle()

	statusStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Bold(true)

	commandStripStyle = lipgloss.NewStyle().
				Background(colorCommandBg)
)

// =============================================================================
// Detail Overlay Styles
// =============================================================================

var (
	detailHeaderStyle = lipgloss.NewStyle().
				Background(colorStatusBg).
				Bold(true)

	detailBoldStyle = lipgloss.NewStyle().
			Bold(true)

	detailRuleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	detailCommandStyle = lipgloss.NewStyle().
				Foreground(colorCursor)

	detailDimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)
