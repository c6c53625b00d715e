package proc

import "slices"

// SortMode names one of the pluggable orderings over a snapshot.
type SortMode string

const (
	SortGeneral SortMode = "general"
	SortMemory  SortMode = "memory"
	SortCPU     SortMode = "cpu"
	SortUptime  SortMode = "uptime"
	SortZombie  SortMode = "zombie"
)

// SortOption pairs a sort mode with its menu label.
type SortOption struct {
	Mode  SortMode
	Label string
}

// SortOptions returns the selectable sort modes in menu order.
func SortOptions() []SortOption {
	return []SortOption{
		{SortGeneral, "General (CPU + Memory)"},
		{SortMemory, "Memory usage"},
		{SortCPU, "CPU usage"},
		{SortUptime, "Uptime (oldest first)"},
		{SortZombie, "Zombie processes"},
	}
}

// ValidSortMode reports whether mode names a known ordering.
func ValidSortMode(mode SortMode) bool {
	for _, opt := range SortOptions() {
		if opt.Mode == mode {
			return true
		}
	}
	return false
}

// SortModeNames returns the valid mode names for error messages.
func SortModeNames() []string {
	opts := SortOptions()
	names := make([]string, len(opts))
	for i, opt := range opts {
		names[i] = string(opt.Mode)
	}
	return names
}

// Sort returns a new slice of records ordered by the given mode. All
// orderings are stable so equal records keep their snapshot order.
func Sort(mode SortMode, records []Record) []Record {
	out := slices.Clone(records)

	switch mode {
	case SortMemory:
		slices.SortStableFunc(out, func(a, b Record) int {
			return descend(a.Mem, b.Mem)
		})
	case SortCPU:
		slices.SortStableFunc(out, func(a, b Record) int {
			return descend(a.CPU, b.CPU)
		})
	case SortUptime:
		// Oldest first; records with unknown start times sort first
		// because their zero timestamp precedes everything.
		slices.SortStableFunc(out, func(a, b Record) int {
			return a.StartedAt.Compare(b.StartedAt)
		})
	case SortZombie:
		// Stable partition: zombies first, everything else keeps order.
		slices.SortStableFunc(out, func(a, b Record) int {
			az, bz := a.IsZombie(), b.IsZombie()
			switch {
			case az && !bz:
				return -1
			case !az && bz:
				return 1
			default:
				return 0
			}
		})
	default: // SortGeneral
		slices.SortStableFunc(out, func(a, b Record) int {
			return descend(a.CPU+a.Mem, b.CPU+b.Mem)
		})
	}

	return out
}

func descend(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
