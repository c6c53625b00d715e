package terminate

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/randomizedcoder/go-ps-reaper/internal/logging"
	"github.com/randomizedcoder/go-ps-reaper/internal/proc"
	"github.com/randomizedcoder/go-ps-reaper/internal/prompt"
)

// fakeSignaller records every signal it delivers. Pids in failTerm/failKill
// return errors; pids in survivors stay alive after SIGTERM, pids in
// unkillable stay alive even after SIGKILL.
type fakeSignaller struct {
	termSent   []int32
	killSent   []int32
	alivePolls []int32

	failTerm   map[int32]error
	failKill   map[int32]error
	survivors  map[int32]bool
	unkillable map[int32]bool
}

func (f *fakeSignaller) Terminate(pid int32) error {
	if err := f.failTerm[pid]; err != nil {
		return err
	}
	f.termSent = append(f.termSent, pid)
	return nil
}

func (f *fakeSignaller) Kill(pid int32) error {
	if err := f.failKill[pid]; err != nil {
		return err
	}
	f.killSent = append(f.killSent, pid)
	return nil
}

func (f *fakeSignaller) Alive(pid int32) bool {
	f.alivePolls = append(f.alivePolls, pid)
	if f.unkillable[pid] {
		return true
	}
	if f.survivors[pid] {
		// Survived SIGTERM; dead once a SIGKILL went out.
		for _, killed := range f.killSent {
			if killed == pid {
				return false
			}
		}
		return true
	}
	return false
}

// scriptedConfirm answers questions in order and fails the test when asked
// more than expected.
func scriptedConfirm(t *testing.T, answers ...prompt.Answer) ConfirmFunc {
	t.Helper()
	i := 0
	return func(question string, def bool) (prompt.Answer, error) {
		t.Helper()
		if i >= len(answers) {
			t.Fatalf("unexpected confirm prompt: %q", question)
		}
		a := answers[i]
		i++
		return a, nil
	}
}

func yes() prompt.Answer       { return prompt.Answer{Yes: true} }
func no() prompt.Answer        { return prompt.Answer{Yes: false} }
func cancelled() prompt.Answer { return prompt.Answer{Cancelled: true} }

func newTestTerminator(t *testing.T, sig *fakeSignaller, confirm ConfirmFunc) (*Terminator, *bytes.Buffer, *[]time.Duration) {
	t.Helper()
	var out bytes.Buffer
	var slept []time.Duration

	logger := logging.NewLoggerWithWriter(&out, "text", "error")
	term := &Terminator{
		sig:     sig,
		confirm: confirm,
		sleep:   func(d time.Duration) { slept = append(slept, d) },
		out:     &out,
		logger:  logger,
		width:   func() int { return 120 },
	}
	return term, &out, &slept
}

func selectedRecords(pids ...int32) []proc.Record {
	records := make([]proc.Record, len(pids))
	for i, pid := range pids {
		records[i] = proc.Record{
			PID:      pid,
			Name:     "worker",
			Command:  "/usr/local/bin/worker --serve",
			Selected: true,
		}
	}
	return records
}

func TestTerminator_NoSelection(t *testing.T) {
	sig := &fakeSignaller{}
	term, out, _ := newTestTerminator(t, sig, scriptedConfirm(t))

	records := selectedRecords(100)
	records[0].Selected = false

	if err := term.Run(records); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(out.String(), "No processes selected.") {
		t.Errorf("output missing no-selection message:\n%s", out.String())
	}
	if len(sig.termSent) != 0 {
		t.Errorf("signals sent without selection: %v", sig.termSent)
	}
}

func TestTerminator_FirstConfirmDeclined(t *testing.T) {
	tests := []struct {
		name   string
		answer prompt.Answer
	}{
		{"no", no()},
		{"cancelled", cancelled()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := &fakeSignaller{}
			term, out, _ := newTestTerminator(t, sig, scriptedConfirm(t, tt.answer))

			if err := term.Run(selectedRecords(100, 101)); err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if !strings.Contains(out.String(), "Operation cancelled.") {
				t.Errorf("output missing cancel message:\n%s", out.String())
			}
			if len(sig.termSent) != 0 {
				t.Errorf("signals sent after decline: %v", sig.termSent)
			}
		})
	}
}

func TestTerminator_GracefulOnly(t *testing.T) {
	sig := &fakeSignaller{}
	term, out, slept := newTestTerminator(t, sig, scriptedConfirm(t, yes()))

	if err := term.Run(selectedRecords(100, 101)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if want := []int32{100, 101}; len(sig.termSent) != 2 || sig.termSent[0] != want[0] || sig.termSent[1] != want[1] {
		t.Errorf("termSent = %v, want %v", sig.termSent, want)
	}
	if len(sig.killSent) != 0 {
		t.Errorf("killSent = %v, want none", sig.killSent)
	}
	if len(*slept) != 1 || (*slept)[0] != graceDelay {
		t.Errorf("slept = %v, want [%v]", *slept, graceDelay)
	}
	if got := out.String(); !strings.Contains(got, "terminated normally") {
		t.Errorf("output missing graceful result:\n%s", got)
	}
}

// A SIGTERM survivor gets exactly one SIGKILL and exactly one extra
// liveness poll after the settle delay.
func TestTerminator_SurvivorGetsSingleKill(t *testing.T) {
	sig := &fakeSignaller{survivors: map[int32]bool{101: true}}
	term, out, slept := newTestTerminator(t, sig, scriptedConfirm(t, yes(), yes()))

	if err := term.Run(selectedRecords(100, 101)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(sig.killSent) != 1 || sig.killSent[0] != 101 {
		t.Errorf("killSent = %v, want [101]", sig.killSent)
	}

	// Polled once after grace (both pids), once after settle (survivor only).
	polls := 0
	for _, pid := range sig.alivePolls {
		if pid == 101 {
			polls++
		}
	}
	if polls != 2 {
		t.Errorf("liveness polls for pid 101 = %d, want 2", polls)
	}

	wantSleeps := []time.Duration{graceDelay, killInterval, settleDelay}
	if len(*slept) != len(wantSleeps) {
		t.Fatalf("slept = %v, want %v", *slept, wantSleeps)
	}
	for i, want := range wantSleeps {
		if (*slept)[i] != want {
			t.Errorf("slept[%d] = %v, want %v", i, (*slept)[i], want)
		}
	}

	got := out.String()
	for _, want := range []string{
		"1 process(es) still running:",
		"force termination signal sent",
		"Verifying force termination results...",
		"force terminated",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTerminator_SecondConfirmDeclined(t *testing.T) {
	sig := &fakeSignaller{survivors: map[int32]bool{100: true}}
	term, out, _ := newTestTerminator(t, sig, scriptedConfirm(t, yes(), no()))

	if err := term.Run(selectedRecords(100)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(sig.killSent) != 0 {
		t.Errorf("killSent = %v, want none after decline", sig.killSent)
	}
	if !strings.Contains(out.String(), "Operation cancelled.") {
		t.Errorf("output missing cancel message:\n%s", out.String())
	}
}

// A failed SIGTERM on one pid must not stop the rest of the batch.
func TestTerminator_PartialTermFailure(t *testing.T) {
	sig := &fakeSignaller{
		failTerm: map[int32]error{100: errors.New("operation not permitted")},
	}
	term, out, _ := newTestTerminator(t, sig, scriptedConfirm(t, yes()))

	if err := term.Run(selectedRecords(100, 101, 102)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if want := []int32{101, 102}; len(sig.termSent) != 2 || sig.termSent[0] != want[0] || sig.termSent[1] != want[1] {
		t.Errorf("termSent = %v, want %v", sig.termSent, want)
	}
	got := out.String()
	if !strings.Contains(got, "signal send failed: operation not permitted") {
		t.Errorf("output missing failure report:\n%s", got)
	}
}

func TestTerminator_AllTermsFailSkipsPoll(t *testing.T) {
	sig := &fakeSignaller{
		failTerm: map[int32]error{100: errors.New("gone")},
	}
	term, _, slept := newTestTerminator(t, sig, scriptedConfirm(t, yes()))

	if err := term.Run(selectedRecords(100)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(*slept) != 0 {
		t.Errorf("slept = %v, want none when nothing was signalled", *slept)
	}
	if len(sig.alivePolls) != 0 {
		t.Errorf("alivePolls = %v, want none", sig.alivePolls)
	}
}

func TestTerminator_UnkillableReported(t *testing.T) {
	sig := &fakeSignaller{
		survivors:  map[int32]bool{100: true},
		unkillable: map[int32]bool{100: true},
	}
	term, out, _ := newTestTerminator(t, sig, scriptedConfirm(t, yes(), yes()))

	if err := term.Run(selectedRecords(100)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(out.String(), "still running") {
		t.Errorf("output missing still-running report:\n%s", out.String())
	}
}

func TestTerminator_FailedKillReported(t *testing.T) {
	sig := &fakeSignaller{
		survivors: map[int32]bool{100: true},
		failKill:  map[int32]error{100: errors.New("operation not permitted")},
	}
	term, out, _ := newTestTerminator(t, sig, scriptedConfirm(t, yes(), yes()))

	if err := term.Run(selectedRecords(100)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(out.String(), "force termination failed: operation not permitted") {
		t.Errorf("output missing kill failure report:\n%s", out.String())
	}
}

func TestTerminator_DisplayCommandFallbacks(t *testing.T) {
	term := &Terminator{width: func() int { return 120 }}

	tests := []struct {
		name string
		r    proc.Record
		want string
	}{
		{"command", proc.Record{Command: "/bin/sleep 30", Name: "sleep"}, "/bin/sleep 30"},
		{"name_fallback", proc.Record{Name: "sleep"}, "sleep"},
		{"unknown", proc.Record{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := term.displayCommand(tt.r); got != tt.want {
				t.Errorf("displayCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTerminator_DisplayCommandTruncated(t *testing.T) {
	term := &Terminator{width: func() int { return 60 }}

	long := strings.Repeat("a", 100)
	got := term.displayCommand(proc.Record{Command: long})
	if len(got) != 40 || !strings.HasSuffix(got, "...") {
		t.Errorf("displayCommand() = %q (len %d), want 40 chars ending in ...", got, len(got))
	}
}
