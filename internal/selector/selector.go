package selector

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the checklist over the given configuration and blocks until
// the user confirms or cancels. An empty record set short-circuits to an
// empty, non-cancelled result without touching the terminal.
func Run(cfg Config) (Result, error) {
	if len(cfg.Records) == 0 {
		return Result{Selected: []int{}}, nil
	}

	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Result{Cancelled: true}, fmt.Errorf("selection ui: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Result{Cancelled: true}, fmt.Errorf("selection ui: unexpected model type %T", final)
	}
	return m.Result(), nil
}
