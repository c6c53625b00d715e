// Package proc provides the process snapshot, classification, filtering,
// and sorting layers for go-ps-reaper.
//
// A snapshot is one point-in-time enumeration of OS processes. Records are
// immutable after collection except for the Selected flag, which is set by
// the selection UI's commit step.
package proc

import "time"

// Record is an immutable snapshot of one OS process at collection time.
//
// String fields are never empty: unknown values use the "?" sentinel and
// Name falls back to "unknown". PID uniquely identifies a record within
// one snapshot.
type Record struct {
	User    string  // owning user
	PID     int32   // process id, unique within a snapshot
	PPID    string  // parent pid, "?" when unknown
	CPU     float64 // CPU percent, >= 0
	Mem     float64 // memory percent, >= 0
	Stat    string  // status letters, "Z" marks a zombie
	Start   string  // formatted start time, "?" when unknown
	Uptime  string  // formatted uptime ("123h45m", "45m"), "?" when unknown
	Command string  // full command line, may be empty
	Name    string  // shortened display name, never empty
	Type    string  // executable basename token

	// StartedAt is the raw start timestamp backing Start and Uptime.
	// Zero when the start time could not be determined.
	StartedAt time.Time

	// Selected is set only by the selection engine's commit step.
	Selected bool
}

// IsZombie reports whether the record's status flags carry the zombie marker.
func (r Record) IsZombie() bool {
	for _, c := range r.Stat {
		if c == 'Z' {
			return true
		}
	}
	return false
}
