package selector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/randomizedcoder/go-ps-reaper/internal/proc"
)

const (
	// nameColumnWidth is the fixed visual width of the name column.
	nameColumnWidth = 50

	// oldProcessHours marks processes running for a week or longer.
	oldProcessHours = 168
)

// Advisory markers appended to the name column.
const (
	markerZombie = "🧟"
	markerHot    = "🔥"
	markerOld    = "⏰"
)

// Entry pairs a record's stable index in the unfiltered snapshot with its
// rendered label. The stable index is the record's identity for the whole
// selection session: filtering produces subsequences of entries but never
// renumbers them.
type Entry struct {
	Index int
	Label string
}

// BuildEntries renders one fixed-width label per record, in order. Labels
// carry a 1-based running number, the marker-annotated name padded to a
// fixed visual width (double-width characters accounted for), and the PID,
// CPU, and MEM columns.
func BuildEntries(records []proc.Record) []Entry {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{Index: i, Label: formatLabel(i+1, r)}
	}
	return entries
}

func formatLabel(number int, r proc.Record) string {
	name := r.Name

	if markers := recordMarkers(r); len(markers) > 0 {
		name = name + " " + strings.Join(markers, " ")
	}

	if runewidth.StringWidth(name) > nameColumnWidth {
		name = runewidth.Truncate(name, nameColumnWidth, "...")
	}
	name = runewidth.FillRight(name, nameColumnWidth)

	return fmt.Sprintf("%3d. %s PID: %-7d CPU: %6.1f%% MEM: %6.1f%%",
		number, name, r.PID, r.CPU, r.Mem)
}

// recordMarkers returns the advisory markers for a record: zombie status,
// "hot" resource usage (CPU >= 100% or memory >= 30%), and week-old uptime.
func recordMarkers(r proc.Record) []string {
	var markers []string
	if r.IsZombie() {
		markers = append(markers, markerZombie)
	}
	if r.Mem >= 30.0 || r.CPU >= 100.0 {
		markers = append(markers, markerHot)
	}
	if uptimeHours(r.Uptime) >= oldProcessHours {
		markers = append(markers, markerOld)
	}
	return markers
}

// uptimeHours parses the hour count out of a formatted uptime ("123h45m").
// Returns 0 for minute-only or unknown uptimes.
func uptimeHours(uptime string) int {
	h, _, found := strings.Cut(uptime, "h")
	if !found {
		return 0
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0
	}
	return hours
}
