// Package prompt implements small single-select terminal prompts: a yes/no
// confirmation and a titled menu. Both are Bubble Tea models and both
// distinguish a picked answer from cancellation (Esc, q, ctrl+c).
package prompt

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Choice is one selectable menu entry. Value is what the caller gets back,
// Label is what the user sees.
type Choice struct {
	Value string
	Label string
}

// Selection is the outcome of a menu prompt.
type Selection struct {
	Value     string
	Cancelled bool
}

// Answer is the outcome of a yes/no prompt.
type Answer struct {
	Yes       bool
	Cancelled bool
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model is a single-select list. Exported for tests; callers use Select or
// Confirm.
type Model struct {
	title   string
	choices []Choice
	keys    keyMap

	cursor    int
	done      bool
	cancelled bool
}

// NewModel creates a menu over the given choices with the cursor on
// defaultValue (first entry when absent).
func NewModel(title string, choices []Choice, defaultValue string) Model {
	m := Model{
		title:   title,
		choices: choices,
		keys:    defaultKeyMap(),
	}
	for i, c := range choices {
		if c.Value == defaultValue {
			m.cursor = i
			break
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Confirm):
		m.done = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Cancel):
		m.done = true
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	s := questionStyle.Render("? "+m.title) + "\n"
	for i, c := range m.choices {
		if i == m.cursor {
			s += cursorStyle.Render("> "+c.Label) + "\n"
		} else {
			s += choiceStyle.Render("  "+c.Label) + "\n"
		}
	}
	s += instructionStyle.Render("↑↓ Move, Enter Confirm")
	return s
}

// Result converts the final model state into a Selection.
func (m Model) Result() Selection {
	if m.cancelled || len(m.choices) == 0 {
		return Selection{Cancelled: true}
	}
	return Selection{Value: m.choices[m.cursor].Value}
}

// Select runs a single-select menu and blocks until a choice is made or the
// prompt is cancelled.
func Select(title string, choices []Choice, defaultValue string) (Selection, error) {
	if len(choices) == 0 {
		return Selection{Cancelled: true}, nil
	}

	p := tea.NewProgram(NewModel(title, choices, defaultValue))
	final, err := p.Run()
	if err != nil {
		return Selection{Cancelled: true}, fmt.Errorf("prompt: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Selection{Cancelled: true}, fmt.Errorf("prompt: unexpected model type %T", final)
	}
	return m.Result(), nil
}

// Confirm asks a yes/no question with the cursor preset to def.
func Confirm(question string, def bool) (Answer, error) {
	defaultValue := "no"
	if def {
		defaultValue = "yes"
	}

	sel, err := Select(question, []Choice{
		{Value: "yes", Label: "Yes"},
		{Value: "no", Label: "No"},
	}, defaultValue)
	if err != nil {
		return Answer{Cancelled: true}, err
	}
	if sel.Cancelled {
		return Answer{Cancelled: true}, nil
	}
	return Answer{Yes: sel.Value == "yes"}, nil
}
