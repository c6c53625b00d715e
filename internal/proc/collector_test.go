package proc

import (
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0m"},
		{"minutes_only", 45 * time.Minute, "45m"},
		{"hours_and_minutes", 3*time.Hour + 12*time.Minute, "3h12m"},
		{"exact_hour", 2 * time.Hour, "2h0m"},
		{"week_plus", 170*time.Hour + 5*time.Minute, "170h5m"},
		{"negative_clamped", -time.Minute, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatUptime(tt.d); got != tt.want {
				t.Errorf("FormatUptime(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatStart(t *testing.T) {
	now := time.Date(2026, time.August, 25, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name    string
		started time.Time
		want    string
	}{
		{"today", time.Date(2026, time.August, 25, 9, 5, 0, 0, time.Local), "09:05"},
		{"this_year", time.Date(2026, time.March, 2, 9, 5, 0, 0, time.Local), "Mar02"},
		{"previous_year", time.Date(2024, time.December, 31, 9, 5, 0, 0, time.Local), "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatStart(tt.started, now); got != tt.want {
				t.Errorf("formatStart(%v) = %q, want %q", tt.started, got, tt.want)
			}
		})
	}
}

func TestStatLetters(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"running", []string{process.Running}, "R"},
		{"sleeping", []string{process.Sleep}, "S"},
		{"zombie", []string{process.Zombie}, "Z"},
		{"multiple", []string{process.Sleep, process.Zombie}, "SZ"},
		{"unknown_dropped", []string{"mystery"}, "?"},
		{"empty", nil, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statLetters(tt.statuses); got != tt.want {
				t.Errorf("statLetters(%v) = %q, want %q", tt.statuses, got, tt.want)
			}
		})
	}
}

func TestRecord_IsZombie(t *testing.T) {
	tests := []struct {
		stat string
		want bool
	}{
		{"Z", true},
		{"SZ", true},
		{"S", false},
		{"?", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.stat, func(t *testing.T) {
			r := Record{Stat: tt.stat}
			if got := r.IsZombie(); got != tt.want {
				t.Errorf("IsZombie() with stat %q = %v, want %v", tt.stat, got, tt.want)
			}
		})
	}
}

// Snapshot against the live process table: at minimum the test process
// itself should be present with its invariant fields populated.
func TestCollector_Snapshot(t *testing.T) {
	c := NewCollector(nil)

	records, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("Snapshot() returned no processes")
	}

	seen := make(map[int32]bool, len(records))
	for _, r := range records {
		if seen[r.PID] {
			t.Errorf("duplicate pid %d in snapshot", r.PID)
		}
		seen[r.PID] = true

		if r.Name == "" {
			t.Errorf("pid %d has empty display name", r.PID)
		}
		if r.User == "" || r.PPID == "" || r.Stat == "" || r.Start == "" || r.Uptime == "" {
			t.Errorf("pid %d has empty sentinel field: %+v", r.PID, r)
		}
		if r.Selected {
			t.Errorf("pid %d collected with Selected set", r.PID)
		}
	}
}
