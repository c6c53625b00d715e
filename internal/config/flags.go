package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/randomizedcoder/go-ps-reaper/internal/proc"
)

// ParseFlags parses command-line flags and returns a Config.
func ParseFlags() (*Config, error) {
	cfg := DefaultConfig()
	var excludes string

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `go-ps-reaper - interactive process killer

Usage:
  go-ps-reaper [flags]

Selection Flags:
`)
		// Print flags by category
		printFlagCategory([]string{"by", "name", "excludes"})

		fmt.Fprintf(os.Stderr, "\nDisplay:\n")
		printFlagCategory([]string{"page-size", "show-system"})

		fmt.Fprintf(os.Stderr, "\nObservability:\n")
		printFlagCategory([]string{"v", "log-format"})

		fmt.Fprintf(os.Stderr, `
Examples:
  # Pick the sort mode from a menu, then select processes to terminate
  go-ps-reaper

  # Jump straight to the memory view
  go-ps-reaper -by memory

  # Keep editors out of the list and only show node processes
  go-ps-reaper -excludes "vim,emacs" -name node

`)
	}

	// Selection flags
	flag.StringVar(&cfg.SortBy, "by", cfg.SortBy,
		fmt.Sprintf("Sort mode, skips the menu: %s", strings.Join(proc.SortModeNames(), ", ")))
	flag.StringVar(&cfg.NameFilter, "name", cfg.NameFilter, "Only list processes whose name contains this keyword")
	flag.StringVar(&excludes, "excludes", "", "Comma-separated name keywords to exclude")

	// Display
	flag.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Checklist rows per page")
	flag.BoolVar(&cfg.ShowSystem, "show-system", cfg.ShowSystem, "Start with system and excluded processes visible")

	// Observability
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)

	// Parse
	flag.Parse()

	cfg.Excludes = proc.ParseExcludes(excludes)

	return cfg, nil
}

// printFlagCategory prints flags matching the given names (helper for usage).
func printFlagCategory(names []string) {
	flag.VisitAll(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				fmt.Fprintf(os.Stderr, "  -%s %s\n    \t%s", f.Name, flagType(f), f.Usage)
				if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
					fmt.Fprintf(os.Stderr, " (default %s)", f.DefValue)
				}
				fmt.Fprintln(os.Stderr)
				return
			}
		}
	})
}

// flagType returns a type hint for the flag value.
func flagType(f *flag.Flag) string {
	switch f.DefValue {
	case "true", "false":
		return ""
	}

	if _, err := fmt.Sscanf(f.DefValue, "%d", new(int)); err == nil {
		return "int"
	}

	return "string"
}
