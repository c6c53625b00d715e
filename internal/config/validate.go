package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randomizedcoder/go-ps-reaper/internal/proc"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing every problem found.
func Validate(cfg *Config) error {
	var errs []error

	// Sort mode, when given, must be one of the known strategies
	if cfg.SortBy != "" && !proc.ValidSortMode(proc.SortMode(cfg.SortBy)) {
		errs = append(errs, ValidationError{
			Field:   "by",
			Message: fmt.Sprintf("must be one of: %s (got %q)", strings.Join(proc.SortModeNames(), ", "), cfg.SortBy),
		})
	}

	// Page size must be positive
	if cfg.PageSize < 1 {
		errs = append(errs, ValidationError{
			Field:   "page_size",
			Message: "must be at least 1",
		})
	}

	// Log format must be valid
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.LogFormat] {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be 'json' or 'text' (got %q)", cfg.LogFormat),
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
