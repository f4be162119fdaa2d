package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/searcher/internal/dom"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "searcher.item_selector")
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
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidHighlightStyles returns the list of valid TUI highlight styles
func ValidHighlightStyles() []string {
	return []string{"background", "underline", "bold", "reverse"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateSearcher()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateSearcher validates the SearcherConfig
func (c *Config) validateSearcher() []ValidationError {
	var errors []ValidationError

	// Required selectors
	required := []struct {
		field string
		value string
	}{
		{"searcher.container_selector", c.Searcher.ContainerSelector},
		{"searcher.item_selector", c.Searcher.ItemSelector},
	}
	for _, sel := range required {
		if sel.value == "" {
			errors = append(errors, ValidationError{
				Field:   sel.field,
				Value:   sel.value,
				Message: "must not be empty",
			})
			continue
		}
		if err := dom.CompileSelector(sel.value); err != nil {
			errors = append(errors, ValidationError{
				Field:   sel.field,
				Value:   sel.value,
				Message: "is not a valid CSS selector",
			})
		}
	}

	// Optional selectors may be empty
	optional := []struct {
		field string
		value string
	}{
		{"searcher.text_selector", c.Searcher.TextSelector},
		{"searcher.input_selector", c.Searcher.InputSelector},
	}
	for _, sel := range optional {
		if sel.value == "" {
			continue
		}
		if err := dom.CompileSelector(sel.value); err != nil {
			errors = append(errors, ValidationError{
				Field:   sel.field,
				Value:   sel.value,
				Message: "is not a valid CSS selector",
			})
		}
	}

	if c.Searcher.Toggle != "" && !slices.Contains(dom.ToggleModes(), c.Searcher.Toggle) {
		errors = append(errors, ValidationError{
			Field:   "searcher.toggle",
			Value:   c.Searcher.Toggle,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(dom.ToggleModes(), ", ")),
		})
	}

	if c.Searcher.Toggle == dom.ToggleClass && strings.ContainsAny(c.Searcher.ToggleClass, " \t\n") {
		errors = append(errors, ValidationError{
			Field:   "searcher.toggle_class",
			Value:   c.Searcher.ToggleClass,
			Message: "must be a single class name",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.HighlightStyle != "" && !slices.Contains(ValidHighlightStyles(), c.TUI.HighlightStyle) {
		errors = append(errors, ValidationError{
			Field:   "tui.highlight_style",
			Value:   c.TUI.HighlightStyle,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidHighlightStyles(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
