package selector

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/randomizedcoder/go-ps-reaper/internal/proc"
)

func TestBuildEntries(t *testing.T) {
	records := testRecords("chrome", "vim", "node")

	entries := BuildEntries(records)
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	for i, e := range entries {
		if e.Index != i {
			t.Errorf("entries[%d].Index = %d, want %d", i, e.Index, i)
		}
		if !strings.Contains(e.Label, records[i].Name) {
			t.Errorf("entries[%d].Label %q missing name %q", i, e.Label, records[i].Name)
		}
	}

	// Labels carry a 1-based running number.
	if !strings.HasPrefix(entries[0].Label, "  1. ") {
		t.Errorf("first label = %q, want 1-based numbering", entries[0].Label)
	}
	if !strings.HasPrefix(entries[2].Label, "  3. ") {
		t.Errorf("third label = %q, want 1-based numbering", entries[2].Label)
	}
}

func TestFormatLabel_Columns(t *testing.T) {
	r := proc.Record{PID: 4242, CPU: 12.3, Mem: 4.5, Name: "vim", Uptime: "5m"}

	label := formatLabel(7, r)
	for _, want := range []string{"  7. ", "PID: 4242", "CPU:   12.3%", "MEM:    4.5%"} {
		if !strings.Contains(label, want) {
			t.Errorf("label %q missing %q", label, want)
		}
	}
}

// Name column width is visual, so ASCII and CJK names line up.
func TestFormatLabel_DoubleWidthAlignment(t *testing.T) {
	ascii := formatLabel(1, proc.Record{PID: 1, Name: "terminal", Uptime: "5m"})
	cjk := formatLabel(2, proc.Record{PID: 2, Name: "ターミナル", Uptime: "5m"})

	if wa, wc := runewidth.StringWidth(ascii), runewidth.StringWidth(cjk); wa != wc {
		t.Errorf("label widths differ: ascii %d, cjk %d", wa, wc)
	}
}

func TestFormatLabel_LongNameTruncated(t *testing.T) {
	r := proc.Record{PID: 1, Name: strings.Repeat("x", 80), Uptime: "5m"}

	label := formatLabel(1, r)
	if !strings.Contains(label, "...") {
		t.Errorf("label %q missing truncation ellipsis", label)
	}

	nameCol := strings.TrimPrefix(label, "  1. ")
	nameCol = nameCol[:strings.Index(nameCol, " PID:")]
	if w := runewidth.StringWidth(nameCol); w != nameColumnWidth {
		t.Errorf("name column width = %d, want %d", w, nameColumnWidth)
	}
}

func TestRecordMarkers(t *testing.T) {
	tests := []struct {
		name string
		r    proc.Record
		want []string
	}{
		{"plain", proc.Record{Stat: "S", CPU: 5, Mem: 5, Uptime: "5m"}, nil},
		{"zombie", proc.Record{Stat: "Z", Uptime: "5m"}, []string{markerZombie}},
		{"high_mem", proc.Record{Stat: "S", Mem: 30.0, Uptime: "5m"}, []string{markerHot}},
		{"high_cpu", proc.Record{Stat: "S", CPU: 100.0, Uptime: "5m"}, []string{markerHot}},
		{"week_old", proc.Record{Stat: "S", Uptime: "168h0m"}, []string{markerOld}},
		{"just_under_week", proc.Record{Stat: "S", Uptime: "167h59m"}, nil},
		{
			"zombie_hot_old",
			proc.Record{Stat: "Z", CPU: 150, Uptime: "200h10m"},
			[]string{markerZombie, markerHot, markerOld},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recordMarkers(tt.r)
			if len(got) != len(tt.want) {
				t.Fatalf("recordMarkers() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("recordMarkers()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUptimeHours(t *testing.T) {
	tests := []struct {
		uptime string
		want   int
	}{
		{"45m", 0},
		{"3h12m", 3},
		{"168h0m", 168},
		{"1234h59m", 1234},
		{"?", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.uptime, func(t *testing.T) {
			if got := uptimeHours(tt.uptime); got != tt.want {
				t.Errorf("uptimeHours(%q) = %d, want %d", tt.uptime, got, tt.want)
			}
		})
	}
}
