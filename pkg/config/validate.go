package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g., "artifactory.server").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. It implements the error interface and provides access to
// all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a
// ValidationError if any validation rules fail. It returns nil if the
// configuration is valid. All validation errors are collected and returned
// together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateArtifactory(&cfg.Artifactory)...)
	errs = append(errs, validatePolicies(&cfg.Policies)...)
	errs = append(errs, validateDaemon(&cfg.Daemon)...)
	errs = append(errs, validateHistory(&cfg.History)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateArtifactory validates the Artifactory connection configuration.
func validateArtifactory(cfg *ArtifactoryConfig) []FieldError {
	var errs []FieldError

	if cfg.Server == "" {
		errs = append(errs, FieldError{
			Field:   "artifactory.server",
			Message: "server URL is required",
		})
	} else if u, err := url.Parse(cfg.Server); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, FieldError{
			Field:   "artifactory.server",
			Message: fmt.Sprintf("invalid server URL %q", cfg.Server),
		})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "artifactory.timeout",
			Message: "timeout must be positive",
		})
	}

	return errs
}

// validatePolicies validates the policy source configuration.
func validatePolicies(cfg *PoliciesConfig) []FieldError {
	var errs []FieldError

	if cfg.FilePath == "" {
		errs = append(errs, FieldError{
			Field:   "policies.file_path",
			Message: "definition file path is required",
		})
	}

	return errs
}

// validateDaemon validates the daemon configuration. The cron expression
// itself is checked by the scheduler at startup.
func validateDaemon(cfg *DaemonConfig) []FieldError {
	var errs []FieldError

	if cfg.Schedule == "" {
		errs = append(errs, FieldError{
			Field:   "daemon.schedule",
			Message: "schedule is required",
		})
	}

	return errs
}

// validateHistory validates the run history configuration.
func validateHistory(cfg *HistoryConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && cfg.DBPath == "" {
		errs = append(errs, FieldError{
			Field:   "history.db_path",
			Message: "database path is required when history is enabled",
		})
	}

	return errs
}

// validateLogging validates the logging configuration.
func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid log level %q (must be debug, info, warn, or error)", cfg.Level),
		})
	}

	switch cfg.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid log format %q (must be json or text)", cfg.Format),
		})
	}

	return errs
}
