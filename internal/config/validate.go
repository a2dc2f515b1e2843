package config

import (
	"errors"
	"fmt"
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
// Returns nil if valid, or an error joining every problem found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Concurrency < 1 {
		errs = append(errs, ValidationError{
			Field:   "concurrency",
			Message: "must be at least 1",
		})
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf(`must be "text" or "json" (got %q)`, cfg.LogFormat),
		})
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: debug, info, warn, error (got %q)", cfg.LogLevel),
		})
	}

	if cfg.TUIEnabled && cfg.RunfilePath == "" {
		errs = append(errs, ValidationError{
			Field:   "tui",
			Message: "-tui requires -runfile (single commands stream to the terminal directly)",
		})
	}

	if cfg.Verbose < 0 {
		errs = append(errs, ValidationError{
			Field:   "verbose",
			Message: "must not be negative",
		})
	}

	return errors.Join(errs...)
}
