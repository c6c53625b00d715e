package proc

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// unknownField is the sentinel for fields the OS did not report.
const unknownField = "?"

// Collector enumerates OS processes into Records.
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a Collector. A nil logger falls back to the default.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{logger: logger}
}

// Snapshot enumerates all visible processes and returns them as Records in
// enumeration order. Per-process read failures are tolerated: fields that
// cannot be read get their sentinel defaults, and a process that disappears
// mid-read is skipped. Returns an error only when the process table itself
// cannot be listed.
func (c *Collector) Snapshot() ([]Record, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	now := time.Now()
	records := make([]Record, 0, len(procs))

	for _, p := range procs {
		command, err := p.Cmdline()
		if err != nil {
			// Most likely the process exited between enumeration and
			// read, or it is a kernel thread we cannot inspect.
			c.logger.Debug("skipping_process", "pid", p.Pid, "error", err)
			continue
		}

		rec := Record{
			PID:     p.Pid,
			PPID:    unknownField,
			Stat:    unknownField,
			Start:   unknownField,
			Uptime:  unknownField,
			Command: command,
			Name:    FormatName(command),
			Type:    FormatType(command),
		}

		if user, err := p.Username(); err == nil && user != "" {
			rec.User = user
		} else {
			rec.User = "unknown"
		}

		if ppid, err := p.Ppid(); err == nil {
			rec.PPID = strconv.Itoa(int(ppid))
		}

		if cpu, err := p.CPUPercent(); err == nil && cpu > 0 {
			rec.CPU = cpu
		}

		if mem, err := p.MemoryPercent(); err == nil && mem > 0 {
			rec.Mem = float64(mem)
		}

		if statuses, err := p.Status(); err == nil {
			rec.Stat = statLetters(statuses)
		}

		if createMs, err := p.CreateTime(); err == nil && createMs > 0 {
			started := time.UnixMilli(createMs)
			rec.StartedAt = started
			rec.Start = formatStart(started, now)
			rec.Uptime = FormatUptime(now.Sub(started))
		}

		records = append(records, rec)
	}

	c.logger.Debug("snapshot_collected", "processes", len(records))
	return records, nil
}

// statLetters converts gopsutil status strings into compact ps-style
// letters ("R", "S", "Z", ...). Unknown statuses are dropped; an empty
// result becomes the unknown sentinel.
func statLetters(statuses []string) string {
	letters := make([]byte, 0, len(statuses))
	for _, s := range statuses {
		switch s {
		case process.Running:
			letters = append(letters, 'R')
		case process.Sleep:
			letters = append(letters, 'S')
		case process.Stop:
			letters = append(letters, 'T')
		case process.Idle:
			letters = append(letters, 'I')
		case process.Zombie:
			letters = append(letters, 'Z')
		case process.Wait:
			letters = append(letters, 'D')
		case process.Lock:
			letters = append(letters, 'L')
		}
	}
	if len(letters) == 0 {
		return unknownField
	}
	return string(letters)
}

// FormatUptime renders a process age as "123h45m", or "45m" when under an
// hour. Negative ages (clock skew) render as "0m".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// formatStart renders a start timestamp the way ps does: clock time for
// processes started today, month/day within the current year, otherwise
// the year.
func formatStart(started, now time.Time) string {
	sy, sm, sd := started.Date()
	ny, nm, nd := now.Date()
	switch {
	case sy == ny && sm == nm && sd == nd:
		return started.Format("15:04")
	case sy == ny:
		return started.Format("Jan02")
	default:
		return started.Format("2006")
	}
}
