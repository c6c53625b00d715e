// Package config provides configuration management for go-ps-reaper.
package config

// Config holds all configuration options for the tool.
type Config struct {
	// Selection
	SortBy     string   `json:"sort_by"` // empty = interactive menu
	Excludes   []string `json:"excludes"`
	NameFilter string   `json:"name_filter"`

	// Display
	PageSize   int  `json:"page_size"`
	ShowSystem bool `json:"show_system"`

	// Observability
	Verbose   bool   `json:"verbose"`
	LogFormat string `json:"log_format"` // json, text
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		// Selection
		SortBy:     "",
		Excludes:   nil,
		NameFilter: "",

		// Display
		PageSize:   20,
		ShowSystem: false,

		// Observability
		Verbose:   false,
		LogFormat: "text",
	}
}
