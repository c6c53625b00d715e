// Package session drives the collect, sort, select, terminate cycle. It
// owns the outer menu loop and the candidate pre-filter; the interactive
// checklist itself lives in the selector package.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/randomizedcoder/go-ps-reaper/internal/config"
	"github.com/randomizedcoder/go-ps-reaper/internal/proc"
	"github.com/randomizedcoder/go-ps-reaper/internal/prompt"
	"github.com/randomizedcoder/go-ps-reaper/internal/selector"
	"github.com/randomizedcoder/go-ps-reaper/internal/terminate"
)

const selectionTitle = "Select processes to terminate (multiple selection available)"

// Session wires the collector, the sort menu, the selection checklist, and
// the terminator together. The indirections exist so tests can script every
// interactive step.
type Session struct {
	cfg        *config.Config
	logger     *slog.Logger
	filter     *proc.Filter
	classifier proc.Classifier
	selfPID    int32
	out        io.Writer

	snapshot  func() ([]proc.Record, error)
	selectRun func(selector.Config) (selector.Result, error)
	menu      func(title string, choices []prompt.Choice, def string) (prompt.Selection, error)
	terminate func([]proc.Record) error
}

// New creates a session over the live process table and real prompts.
func New(cfg *config.Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	collector := proc.NewCollector(logger)
	terminator := terminate.New(logger)

	return &Session{
		cfg:        cfg,
		logger:     logger,
		filter:     proc.NewFilter(cfg.Excludes, cfg.NameFilter),
		classifier: proc.Classifier{},
		selfPID:    int32(os.Getpid()),
		out:        os.Stdout,

		snapshot:  collector.Snapshot,
		selectRun: selector.Run,
		menu:      prompt.Select,
		terminate: terminator.Run,
	}
}

// Run executes the session. With a configured sort mode it runs one cycle
// and returns; otherwise it loops on the sort menu until Exit.
func (s *Session) Run() error {
	if s.cfg.SortBy != "" {
		mode := proc.SortMode(s.cfg.SortBy)
		if !proc.ValidSortMode(mode) {
			return fmt.Errorf("invalid sorting method %q", s.cfg.SortBy)
		}
		s.runCycle(mode)
		return nil
	}

	for {
		mode, ok, err := s.pickSortMode()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.out, "Exiting program.")
			return nil
		}
		s.runCycle(mode)
	}
}

// pickSortMode shows the sort menu. ok is false when the user picked Exit
// or cancelled the prompt.
func (s *Session) pickSortMode() (proc.SortMode, bool, error) {
	options := proc.SortOptions()
	choices := make([]prompt.Choice, 0, len(options)+1)
	for _, opt := range options {
		choices = append(choices, prompt.Choice{Value: string(opt.Mode), Label: opt.Label})
	}
	choices = append(choices, prompt.Choice{Value: "exit", Label: "Exit"})

	sel, err := s.menu("Select process sorting method", choices, "")
	if err != nil {
		return "", false, fmt.Errorf("sort menu: %w", err)
	}
	if sel.Cancelled || sel.Value == "exit" {
		return "", false, nil
	}
	return proc.SortMode(sel.Value), true, nil
}

// runCycle executes one collect-select-terminate pass. A panic anywhere in
// the cycle is reported with its stack and absorbed so the menu loop can
// continue.
func (s *Session) runCycle(mode proc.SortMode) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("cycle panicked", "panic", r)
			fmt.Fprintf(s.out, "An error occurred: %v\n%s\n", r, debug.Stack())
		}
	}()

	fmt.Fprintln(s.out, "Collecting process information...")
	records, err := s.snapshot()
	if err != nil {
		s.logger.Error("snapshot failed", "error", err)
		fmt.Fprintln(s.out, "Failed to retrieve process information.")
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(s.out, "Failed to retrieve process information.")
		return
	}

	sorted := proc.Sort(mode, records)
	candidates := s.preFilter(sorted)
	if len(candidates) == 0 {
		fmt.Fprintln(s.out, "No processes to display.")
		return
	}

	result, err := s.selectRun(selector.Config{
		Title:        selectionTitle,
		Records:      candidates,
		Predicates:   s.predicates(),
		ShowAll:      s.cfg.ShowSystem,
		PageSize:     s.cfg.PageSize,
		ExcludeCount: len(s.cfg.Excludes),
	})
	if err != nil {
		s.logger.Error("selection failed", "error", err)
		fmt.Fprintf(s.out, "An error occurred: %v\n", err)
		return
	}
	if result.Cancelled {
		return
	}
	if len(result.Selected) == 0 {
		fmt.Fprintln(s.out, "No processes selected.")
		return
	}

	for _, idx := range result.Selected {
		candidates[idx].Selected = true
	}

	if err := s.terminate(candidates); err != nil {
		s.logger.Error("termination failed", "error", err)
		fmt.Fprintf(s.out, "An error occurred: %v\n", err)
	}
}

// preFilter drops rows that never belong in the checklist: this process
// itself, system processes, excluded names, and name-filter misses.
func (s *Session) preFilter(records []proc.Record) []proc.Record {
	var out []proc.Record
	for _, r := range records {
		if r.PID == s.selfPID {
			continue
		}
		if s.classifier.IsSystem(r) {
			continue
		}
		if s.filter.IsExcluded(r) {
			continue
		}
		if s.cfg.NameFilter != "" && !s.filter.MatchesName(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

type predicates struct {
	classifier proc.Classifier
	filter     *proc.Filter
}

func (p predicates) IsSystem(r proc.Record) bool    { return p.classifier.IsSystem(r) }
func (p predicates) IsExcluded(r proc.Record) bool  { return p.filter.IsExcluded(r) }
func (p predicates) MatchesName(r proc.Record) bool { return p.filter.MatchesName(r) }

func (s *Session) predicates() selector.Predicates {
	return predicates{classifier: s.classifier, filter: s.filter}
}
