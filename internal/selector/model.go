package selector

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomizedcoder/go-ps-reaper/internal/proc"
)

// DefaultPageSize is the checklist viewport row count.
const DefaultPageSize = 20

// Mode is the engine's input mode. The three modes are mutually exclusive.
type Mode int

const (
	// ModeNormal is the plain checklist: navigation, selection, commit.
	ModeNormal Mode = iota
	// ModeSearch routes printable characters into the search query.
	ModeSearch
	// ModeDetail shows the full-viewport detail overlay and swallows
	// everything except the keys that close it.
	ModeDetail
)

// Predicates classifies records for the dynamic hide-toggle. The engine
// calls these per candidate row on every view recompute and assumes they
// are cheap and pure.
type Predicates interface {
	IsSystem(proc.Record) bool
	IsExcluded(proc.Record) bool
	MatchesName(proc.Record) bool
}

// Result is the outcome of one selection session. When Cancelled is true,
// Selected is always empty: cancellation never commits partial state.
// Selected holds stable indices into the record slice the caller passed in.
type Result struct {
	Cancelled bool
	Selected  []int
}

// Config holds the selection engine configuration.
type Config struct {
	Title      string
	Records    []proc.Record
	Predicates Predicates

	// ShowAll starts the session with the hide-toggle off, so system and
	// excluded processes are visible from the start.
	ShowAll bool

	// PageSize overrides the viewport row count (default 20).
	PageSize int

	// ExcludeCount is how many exclusion keywords are configured, shown
	// in the status line.
	ExcludeCount int
}

// Model is the checklist state. All session state lives here: the engine
// has no package-level mutable state, and a Model is discarded when its
// session ends.
type Model struct {
	title   string
	records []proc.Record
	entries []Entry
	preds   Predicates
	keys    KeyMap

	mode         Mode
	cursor       int // index into the filtered view, not a stable index
	pageSize     int
	hideFiltered bool
	searchQuery  string
	selected     map[int]struct{} // stable indices
	detailIndex  int              // stable index shown by the detail overlay
	excludeCount int

	width  int
	height int

	confirmed bool
	cancelled bool
	quitting  bool
}

// New creates a selection model over the given records. Records are read
// by reference and never mutated; the caller applies the returned stable
// indices itself.
func New(cfg Config) Model {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return Model{
		title:        cfg.Title,
		records:      cfg.Records,
		entries:      BuildEntries(cfg.Records),
		preds:        cfg.Predicates,
		keys:         DefaultKeyMap(),
		pageSize:     pageSize,
		hideFiltered: !cfg.ShowAll,
		selected:     make(map[int]struct{}),
		excludeCount: cfg.ExcludeCount,
		width:        80,
		height:       24,
	}
}

// =============================================================================
// Bubble Tea Interface
// =============================================================================

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Each key event is handled synchronously to
// completion before the next redraw; there is no concurrent mutation of the
// model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeDetail:
			return m.handleDetailKey(msg)
		case ModeSearch:
			return m.handleSearchKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}

	return m, nil
}

// =============================================================================
// Key Handling
// =============================================================================

// handleDetailKey processes keys while the detail overlay is open. The
// overlay is blocking: keys that are commands elsewhere close it without
// being reprocessed, everything else is swallowed.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Detail), key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal

	case key.Matches(msg, m.keys.Up),
		key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.PageUp),
		key.Matches(msg, m.keys.PageDown),
		key.Matches(msg, m.keys.Toggle),
		key.Matches(msg, m.keys.ToggleFilter),
		key.Matches(msg, m.keys.Confirm),
		key.Matches(msg, m.keys.Cancel):
		// Close the overlay; the key itself is not reprocessed.
		m.mode = ModeNormal
	}

	return m, nil
}

// handleSearchKey processes keys in search mode. Reserved command letters
// (d, e, q) stay reachable: they exit search first and then run their
// command. Space appends a literal space instead of toggling selection.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.exitSearch()
		m.cursor = 0
		m.clampCursor()

	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()

	case key.Matches(msg, m.keys.Cancel):
		return m.cancel()

	case key.Matches(msg, m.keys.Detail):
		// Resolve the target while the query still narrows the view, so
		// the overlay shows the row the user had highlighted.
		entry, ok := m.currentEntry()
		m.exitSearch()
		m.clampCursor()
		if ok {
			m.mode = ModeDetail
			m.detailIndex = entry.Index
		}

	case key.Matches(msg, m.keys.ToggleFilter):
		m.exitSearch()
		m.toggleFilter()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.AltPageUp):
		m.pageUp()

	case key.Matches(msg, m.keys.PageDown), key.Matches(msg, m.keys.AltPageDown):
		m.pageDown()

	case key.Matches(msg, m.keys.Backspace):
		if m.searchQuery != "" {
			runes := []rune(m.searchQuery)
			m.searchQuery = string(runes[:len(runes)-1])
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.Toggle):
		m.appendQuery(" ")

	case key.Matches(msg, m.keys.Search):
		m.appendQuery("/")

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
			if s := searchText(msg.Runes); s != "" {
				m.appendQuery(s)
			}
		}
	}

	return m, nil
}

// handleNormalKey processes keys in the plain checklist mode.
func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.AltPageUp):
		m.pageUp()

	case key.Matches(msg, m.keys.PageDown), key.Matches(msg, m.keys.AltPageDown):
		m.pageDown()

	case key.Matches(msg, m.keys.Toggle):
		if entry, ok := m.currentEntry(); ok {
			m.toggleSelection(entry.Index)
		}

	case key.Matches(msg, m.keys.Detail):
		m.openDetail()

	case key.Matches(msg, m.keys.ToggleFilter):
		m.toggleFilter()

	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()

	case key.Matches(msg, m.keys.Cancel):
		return m.cancel()

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchQuery = ""
		m.cursor = 0
	}

	return m, nil
}

// =============================================================================
// State Transitions
// =============================================================================

func (m *Model) exitSearch() {
	m.mode = ModeNormal
	m.searchQuery = ""
}

func (m *Model) appendQuery(s string) {
	m.searchQuery += s
	m.cursor = 0
}

// searchText drops the reserved command letters (d, e, q in either case)
// from typed input, so those commands stay reachable while searching.
func searchText(runes []rune) string {
	var b strings.Builder
	for _, r := range runes {
		switch unicode.ToLower(r) {
		case 'd', 'e', 'q':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (m *Model) openDetail() {
	if entry, ok := m.currentEntry(); ok {
		m.mode = ModeDetail
		m.detailIndex = entry.Index
	}
}

func (m *Model) toggleFilter() {
	m.hideFiltered = !m.hideFiltered
	m.clampCursor()
}

func (m *Model) toggleSelection(stableIndex int) {
	if _, ok := m.selected[stableIndex]; ok {
		delete(m.selected, stableIndex)
	} else {
		m.selected[stableIndex] = struct{}{}
	}
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	m.confirmed = true
	m.quitting = true
	return m, tea.Quit
}

func (m Model) cancel() (tea.Model, tea.Cmd) {
	m.cancelled = true
	m.quitting = true
	return m, tea.Quit
}

// =============================================================================
// Cursor & Paging
// =============================================================================

func (m *Model) moveCursor(delta int) {
	n := len(m.filtered())
	if n == 0 {
		m.cursor = 0
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= n {
		return // no wrap
	}
	m.cursor = next
}

// pageStart returns the first row of the page containing the cursor.
func (m Model) pageStart() int {
	return (m.cursor / m.pageSize) * m.pageSize
}

// pageEnd returns one past the last visible row of the current page.
func (m Model) pageEnd(filteredLen int) int {
	end := m.pageStart() + m.pageSize
	if end > filteredLen {
		end = filteredLen
	}
	return end
}

func (m *Model) pageUp() {
	start := m.pageStart()
	if start > 0 {
		m.cursor = max(0, start-m.pageSize)
	} else {
		m.cursor = 0
	}
}

func (m *Model) pageDown() {
	n := len(m.filtered())
	if n == 0 {
		m.cursor = 0
		return
	}
	end := m.pageEnd(n)
	if end < n {
		m.cursor = min(n-1, end)
	} else {
		m.cursor = n - 1
	}
}

// clampCursor forces the cursor back into range after a visibility change.
func (m *Model) clampCursor() {
	n := len(m.filtered())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// =============================================================================
// Derived View
// =============================================================================

// searchActive reports whether a search substring currently constrains the
// view. The query only exists while search mode is engaged; leaving search
// always clears it.
func (m Model) searchActive() bool {
	return m.mode == ModeSearch && m.searchQuery != ""
}

// filtered recomputes the visible subsequence of entries. It is recomputed
// on every use rather than cached: toggles and the search query change
// often and snapshots are small, so recomputation keeps the stable-index
// mapping trivially correct.
func (m Model) filtered() []Entry {
	query := strings.ToLower(m.searchQuery)
	searching := m.searchActive()

	var out []Entry
	for _, entry := range m.entries {
		if m.hideFiltered && m.preds != nil {
			rec := m.records[entry.Index]
			if m.preds.IsSystem(rec) || m.preds.IsExcluded(rec) {
				continue
			}
		}
		if searching && !strings.Contains(strings.ToLower(entry.Label), query) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// currentEntry returns the entry under the cursor, if the filtered view is
// non-empty.
func (m Model) currentEntry() (Entry, bool) {
	filtered := m.filtered()
	if m.cursor >= len(filtered) {
		return Entry{}, false
	}
	return filtered[m.cursor], true
}

// =============================================================================
// Outcome
// =============================================================================

// Result converts the final model state into the session outcome. A session
// that never confirmed counts as cancelled.
func (m Model) Result() Result {
	if m.cancelled || !m.confirmed {
		return Result{Cancelled: true}
	}

	indices := make([]int, 0, len(m.selected))
	for idx := range m.selected {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return Result{Selected: indices}
}

// SelectedCount returns how many stable indices are currently checked.
func (m Model) SelectedCount() int {
	return len(m.selected)
}
