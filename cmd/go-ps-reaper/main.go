// Package main provides the go-ps-reaper CLI entry point.
//
// go-ps-reaper is an interactive process killer: it lists running
// processes, lets the user filter, sort, and multi-select them in a
// terminal checklist, and terminates the selection gracefully first and
// forcefully on request.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/randomizedcoder/go-ps-reaper/internal/config"
	"github.com/randomizedcoder/go-ps-reaper/internal/logging"
	"github.com/randomizedcoder/go-ps-reaper/internal/session"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/go-ps-reaper
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Handle version flag early (before flag parsing)
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("go-ps-reaper %s\n", version)
			return 0
		}
	}

	// Parse command-line flags
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	// Initialize logger. Logs are discarded unless -v is given: the
	// checklist owns the terminal and stray log lines corrupt it.
	var logger *slog.Logger
	if cfg.Verbose {
		logger = logging.NewLogger(cfg.LogFormat, "debug", cfg.Verbose)
	} else {
		logger = logging.NewLoggerWithWriter(io.Discard, cfg.LogFormat, "info")
	}
	logging.SetDefault(logger)

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	logger.Info("starting",
		"version", version,
		"sort_by", cfg.SortBy,
		"excludes", cfg.Excludes,
		"name_filter", cfg.NameFilter,
		"page_size", cfg.PageSize,
	)

	// Print startup banner
	printBanner(cfg)

	// Create and run the session
	sess := session.New(cfg, logger)
	if err := sess.Run(); err != nil {
		logger.Error("session_failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// printBanner prints the startup banner.
func printBanner(cfg *config.Config) {
	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                         go-ps-reaper                              ║")
	fmt.Println("║              Interactive Process Selection & Termination          ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	if cfg.SortBy != "" {
		fmt.Printf("  Sort:        %s\n", cfg.SortBy)
	}
	if len(cfg.Excludes) > 0 {
		fmt.Printf("  Excludes:    %d keyword(s)\n", len(cfg.Excludes))
	}
	if cfg.NameFilter != "" {
		fmt.Printf("  Name:        %s\n", cfg.NameFilter)
	}
	fmt.Println()
}
