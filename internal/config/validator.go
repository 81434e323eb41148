package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/relay/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "stress.endpoints")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Upper bounds that keep a stress run inside one process's memory.
const (
	maxStressEndpoints = 10000
	maxStressMessages  = 1000000
)

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateDemo()...)
	errors = append(errors, c.validateStress()...)

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.Format != "" && !slices.Contains(logging.ValidFormats(), c.Logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidFormats(), ", ")),
		})
	}

	return errors
}

// validateDemo validates the DemoConfig
func (c *Config) validateDemo() []ValidationError {
	var errors []ValidationError

	if len(c.Demo.Endpoints) < 2 {
		errors = append(errors, ValidationError{
			Field:   "demo.endpoints",
			Value:   c.Demo.Endpoints,
			Message: "needs at least two endpoints",
		})
	}

	seen := make(map[string]bool, len(c.Demo.Endpoints))
	for i, name := range c.Demo.Endpoints {
		field := fmt.Sprintf("demo.endpoints[%d]", i)
		if strings.TrimSpace(name) == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   name,
				Message: "must not be empty",
			})
			continue
		}
		if seen[name] {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   name,
				Message: "duplicate endpoint name",
			})
		}
		seen[name] = true
	}

	return errors
}

// validateStress validates the StressConfig
func (c *Config) validateStress() []ValidationError {
	var errors []ValidationError

	if c.Stress.Endpoints < 2 {
		errors = append(errors, ValidationError{
			Field:   "stress.endpoints",
			Value:   c.Stress.Endpoints,
			Message: "must be at least 2",
		})
	}
	if c.Stress.Endpoints > maxStressEndpoints {
		errors = append(errors, ValidationError{
			Field:   "stress.endpoints",
			Value:   c.Stress.Endpoints,
			Message: fmt.Sprintf("exceeds maximum of %d", maxStressEndpoints),
		})
	}

	if c.Stress.Messages < 0 {
		errors = append(errors, ValidationError{
			Field:   "stress.messages",
			Value:   c.Stress.Messages,
			Message: "must be non-negative",
		})
	}
	if c.Stress.Messages > maxStressMessages {
		errors = append(errors, ValidationError{
			Field:   "stress.messages",
			Value:   c.Stress.Messages,
			Message: fmt.Sprintf("exceeds maximum of %d", maxStressMessages),
		})
	}

	if c.Stress.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "stress.timeout",
			Value:   c.Stress.Timeout,
			Message: "must be positive",
		})
	}

	return errors
}
