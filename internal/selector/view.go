package selector

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// View implements tea.Model. The detail overlay is a full-viewport
// alternate render, not a popup composited over the list.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == ModeDetail {
		return m.detailView()
	}
	return m.listView()
}

// =============================================================================
// Checklist
// =============================================================================

// listView stacks the fixed chrome above the rows: title, the two-line
// command strip for the cursor row, the status line, then the current page
// of checklist rows.
func (m Model) listView() string {
	var b strings.Builder

	filtered := m.filtered()
	start := m.pageStart()
	end := m.pageEnd(len(filtered))

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.commandStrip())
	b.WriteString("\n")
	b.WriteString(m.statusLine(len(filtered)))
	b.WriteString("\n")

	if len(filtered) == 0 {
		b.WriteString(placeholderStyle.Render("(No items to display)"))
		return b.String()
	}

	for i := start; i < end; i++ {
		entry := filtered[i]
		b.WriteString(m.renderRow(entry, i == m.cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderRow(entry Entry, isCursor bool) string {
	_, isSelected := m.selected[entry.Index]

	checkbox := "[ ]"
	if isSelected {
		checkbox = "[X]"
	}
	prefix := "  "
	if isCursor {
		prefix = "> "
	}

	text := prefix + checkbox + " " + entry.Label

	switch {
	case isCursor && isSelected:
		return rowCursorSelectedStyle.Render(text)
	case isCursor:
		return rowCursorStyle.Render(text)
	case isSelected:
		return rowSelectedStyle.Render(text)
	default:
		return rowStyle.Render(text)
	}
}

// commandStrip renders the cursor row's full command as two fixed-width
// lines above the status bar. Empty when the filtered view is empty, so
// the layout height stays constant.
func (m Model) commandStrip() string {
	width := m.width

	line1, line2 := "", ""
	if entry, ok := m.currentEntry(); ok {
		command := []rune(m.records[entry.Index].Command)
		if maxLen := width*2 - 3; maxLen > 0 && len(command) > width*2 {
			command = append(command[:maxLen], []rune("...")...)
		}
		if len(command) > width {
			line1 = string(command[:width])
			line2 = string(command[width:])
		} else {
			line1 = string(command)
		}
	}

	return commandStripStyle.Render(runewidth.FillRight(line1, width)) + "\n" +
		commandStripStyle.Render(runewidth.FillRight(line2, width))
}

func (m Model) statusLine(total int) string {
	if m.mode == ModeSearch {
		return statusStyle.Render(fmt.Sprintf(
			"Search: %s_ | [%d results] | ESC: Exit search",
			m.searchQuery, total))
	}

	filterStatus := "All processes shown"
	if m.hideFiltered {
		filterStatus = "Excluded processes hidden"
		if m.excludeCount > 0 {
			filterStatus = fmt.Sprintf("Excluded processes hidden (%d)", m.excludeCount)
		}
	}

	return statusStyle.Render(fmt.Sprintf(
		"[%d/%d] Selected: %d | %s | ↑↓ Move, Space Select, Enter Confirm, / Search, d Detail, e Exclude Filter, q Cancel",
		m.cursor+1, total, len(m.selected), filterStatus))
}

// =============================================================================
// Detail Overlay
// =============================================================================

func (m Model) detailView() string {
	if m.detailIndex < 0 || m.detailIndex >= len(m.records) {
		return ""
	}
	r := m.records[m.detailIndex]
	width := m.width
	rule := strings.Repeat("─", width)

	commandLines := wrapRunes(r.Command, width-4)
	if len(commandLines) == 0 {
		commandLines = []string{"(No command)"}
	}

	var b strings.Builder
	b.WriteString(detailHeaderStyle.Render(centerText("Process Detail Information", width)))
	b.WriteString("\n\n")
	b.WriteString(detailBoldStyle.Render(fmt.Sprintf("Process Name: %s  |  Type: %s", r.Name, r.Type)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("PID: %d  |  PPID: %s  |  User: %s  |  Status: %s", r.PID, r.PPID, r.User, r.Stat))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("CPU: %.1f%%  |  Memory: %.1f%%  |  Start Time: %s  |  Uptime: %s", r.CPU, r.Mem, r.Start, r.Uptime))
	b.WriteString("\n\n")
	b.WriteString(detailRuleStyle.Render(rule))
	b.WriteString("\n")
	b.WriteString(detailRuleStyle.Render("Full Command"))
	b.WriteString("\n")
	b.WriteString(detailRuleStyle.Render(rule))
	b.WriteString("\n")
	for _, line := range commandLines {
		b.WriteString(detailCommandStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(detailDimStyle.Render(rule))
	b.WriteString("\n")
	b.WriteString(detailDimStyle.Render(centerText("Press ESC or d key to close", width)))

	return b.String()
}

// centerText pads text to the given visual width, accounting for
// double-width characters.
func centerText(text string, width int) string {
	visual := runewidth.StringWidth(text)
	if visual >= width {
		return text
	}
	left := (width - visual) / 2
	right := width - visual - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

// wrapRunes splits s into chunks of at most w runes. Returns nil for an
// empty string.
func wrapRunes(s string, w int) []string {
	if s == "" {
		return nil
	}
	if w <= 0 {
		return []string{s}
	}
	runes := []rune(s)
	var lines []string
	for i := 0; i < len(runes); i += w {
		end := min(i+w, len(runes))
		lines = append(lines, string(runes[i:end]))
	}
	return lines
}
