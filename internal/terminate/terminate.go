// Package terminate implements the graceful-then-forceful termination flow:
// SIGTERM fan-out, a grace period, a liveness poll, then an explicitly
// confirmed SIGKILL pass for the survivors. Per-process failures are
// reported and never abort the batch.
package terminate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/term"

	"github.com/randomizedcoder/go-ps-reaper/internal/proc"
	"github.com/randomizedcoder/go-ps-reaper/internal/prompt"
)

const (
	// graceDelay is how long processes get to exit after SIGTERM before
	// the liveness poll.
	graceDelay = 2 * time.Second

	// killInterval spaces out consecutive SIGKILL sends.
	killInterval = 100 * time.Millisecond

	// settleDelay is the wait between the SIGKILL pass and the final poll.
	settleDelay = 1 * time.Second
)

// Signaller delivers signals to processes. The production implementation
// uses gopsutil; tests substitute a fake.
type Signaller interface {
	// Terminate sends SIGTERM.
	Terminate(pid int32) error
	// Kill sends SIGKILL.
	Kill(pid int32) error
	// Alive reports whether the process still exists.
	Alive(pid int32) bool
}

type gopsutilSignaller struct{}

func (gopsutilSignaller) Terminate(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return err
	}
	return p.SendSignal(syscall.SIGTERM)
}

func (gopsutilSignaller) Kill(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}

func (gopsutilSignaller) Alive(pid int32) bool {
	exists, err := process.PidExists(pid)
	return err == nil && exists
}

// ConfirmFunc asks a yes/no question. The default is prompt.Confirm.
type ConfirmFunc func(question string, def bool) (prompt.Answer, error)

// Terminator runs the termination flow over selected records.
type Terminator struct {
	sig     Signaller
	confirm ConfirmFunc
	sleep   func(time.Duration)
	out     io.Writer
	logger  *slog.Logger
	width   func() int
}

// New creates a Terminator wired to the real process table, the interactive
// confirm prompt, and stdout.
func New(logger *slog.Logger) *Terminator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Terminator{
		sig:     gopsutilSignaller{},
		confirm: prompt.Confirm,
		sleep:   time.Sleep,
		out:     os.Stdout,
		logger:  logger,
		width:   terminalWidth,
	}
}

// terminalWidth returns the current stdout width, or 80 when stdout is not
// a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// Run terminates every record with Selected set. Returns an error only for
// prompt failures; signal errors are reported per process and absorbed.
func (t *Terminator) Run(records []proc.Record) error {
	var selected []proc.Record
	for _, r := range records {
		if r.Selected {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		fmt.Fprintln(t.out, "No processes selected.")
		return nil
	}

	fmt.Fprintf(t.out, "\nTerminate %d process(es)?\n", len(selected))
	for _, r := range selected {
		fmt.Fprintf(t.out, "  • %s (PID: %d)\n", t.displayCommand(r), r.PID)
	}

	answer, err := t.confirm("Continue?", true)
	if err != nil {
		return fmt.Errorf("termination confirm: %w", err)
	}
	if answer.Cancelled || !answer.Yes {
		fmt.Fprintln(t.out, "Operation cancelled.")
		return nil
	}

	fmt.Fprintln(t.out, "\nSending termination signals...")

	var signalled []proc.Record
	for _, r := range selected {
		if err := t.sig.Terminate(r.PID); err != nil {
			t.logger.Debug("sigterm failed", "pid", r.PID, "error", err)
			fmt.Fprintf(t.out, "✗ %s (PID: %d) signal send failed: %v\n", t.displayCommand(r), r.PID, err)
			continue
		}
		signalled = append(signalled, r)
		fmt.Fprintf(t.out, "✓ %s (PID: %d) termination signal sent\n", t.displayCommand(r), r.PID)
	}
	if len(signalled) == 0 {
		return nil
	}

	fmt.Fprintln(t.out, "\nVerifying process termination...")
	t.sleep(graceDelay)

	var survivors []proc.Record
	for _, r := range signalled {
		if t.sig.Alive(r.PID) {
			survivors = append(survivors, r)
			continue
		}
		fmt.Fprintf(t.out, "✓ %s (PID: %d) terminated normally\n", t.displayCommand(r), r.PID)
	}
	if len(survivors) == 0 {
		return nil
	}

	return t.forceKill(survivors)
}

// forceKill runs the confirmed SIGKILL pass over the SIGTERM survivors.
func (t *Terminator) forceKill(survivors []proc.Record) error {
	fmt.Fprintf(t.out, "\n%d process(es) still running:\n", len(survivors))
	for _, r := range survivors {
		fmt.Fprintf(t.out, "  • %s (PID: %d)\n", t.displayCommand(r), r.PID)
	}

	answer, err := t.confirm("Attempt force termination (SIGKILL)?", true)
	if err != nil {
		return fmt.Errorf("force termination confirm: %w", err)
	}
	if answer.Cancelled || !answer.Yes {
		fmt.Fprintln(t.out, "Operation cancelled.")
		return nil
	}

	for _, r := range survivors {
		if err := t.sig.Kill(r.PID); err != nil {
			t.logger.Debug("sigkill failed", "pid", r.PID, "error", err)
			fmt.Fprintf(t.out, "✗ %s (PID: %d) force termination failed: %v\n", t.displayCommand(r), r.PID, err)
			continue
		}
		fmt.Fprintf(t.out, "✓ %s (PID: %d) force termination signal sent\n", t.displayCommand(r), r.PID)
		t.sleep(killInterval)
	}

	t.sleep(settleDelay)
	fmt.Fprintln(t.out, "\nVerifying force termination results...")
	for _, r := range survivors {
		if t.sig.Alive(r.PID) {
			fmt.Fprintf(t.out, "✗ %s (PID: %d) still running\n", t.displayCommand(r), r.PID)
			continue
		}
		fmt.Fprintf(t.out, "✓ %s (PID: %d) force terminated\n", t.displayCommand(r), r.PID)
	}
	return nil
}

// displayCommand returns the record's full command, falling back to the
// display name, truncated to fit the current terminal.
func (t *Terminator) displayCommand(r proc.Record) string {
	command := r.Command
	if command == "" {
		command = r.Name
	}
	if command == "" {
		command = "unknown"
	}

	// Leave room for the bullet and pid suffix.
	maxLen := t.width() - 20
	if maxLen < 20 {
		maxLen = 20
	}
	runes := []rune(command)
	if len(runes) > maxLen {
		command = string(runes[:maxLen-3]) + "..."
	}
	return command
}
