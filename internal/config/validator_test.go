package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate_Searcher(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:      "empty container selector",
			modify:    func(c *Config) { c.Searcher.ContainerSelector = "" },
			wantField: "searcher.container_selector",
		},
		{
			name:      "invalid container selector",
			modify:    func(c *Config) { c.Searcher.ContainerSelector = "table[" },
			wantField: "searcher.container_selector",
		},
		{
			name:      "empty item selector",
			modify:    func(c *Config) { c.Searcher.ItemSelector = "" },
			wantField: "searcher.item_selector",
		},
		{
			name:      "invalid item selector",
			modify:    func(c *Config) { c.Searcher.ItemSelector = "tbody >" },
			wantField: "searcher.item_selector",
		},
		{
			name:      "invalid text selector",
			modify:    func(c *Config) { c.Searcher.TextSelector = "td:" },
			wantField: "searcher.text_selector",
		},
		{
			name:      "invalid input selector",
			modify:    func(c *Config) { c.Searcher.InputSelector = "#" },
			wantField: "searcher.input_selector",
		},
		{
			name:      "unknown toggle",
			modify:    func(c *Config) { c.Searcher.Toggle = "fade" },
			wantField: "searcher.toggle",
		},
		{
			name: "toggle class with spaces",
			modify: func(c *Config) {
				c.Searcher.Toggle = "class"
				c.Searcher.ToggleClass = "a b"
			},
			wantField: "searcher.toggle_class",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestConfig_Validate_SearcherOptionalEmpty(t *testing.T) {
	cfg := Default()
	cfg.Searcher.TextSelector = ""
	cfg.Searcher.InputSelector = ""
	cfg.Searcher.Highlight = ""
	cfg.Searcher.Toggle = ""

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("empty optional values should be valid, got: %v", errs)
	}
}

func TestConfig_Validate_TUI(t *testing.T) {
	for _, style := range ValidHighlightStyles() {
		cfg := Default()
		cfg.TUI.HighlightStyle = style
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Errorf("highlight style %q should be valid, got: %v", style, errs)
		}
	}

	cfg := Default()
	cfg.TUI.HighlightStyle = "blink"
	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "tui.highlight_style" {
		t.Errorf("Validate() = %v, want one tui.highlight_style error", errs)
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"invalid level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"zero max size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"huge max size", func(c *Config) { c.Logging.MaxSizeMB = 5000 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}

	for _, level := range ValidLogLevels() {
		cfg := Default()
		cfg.Logging.Level = level
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Errorf("level %q should be valid, got: %v", level, errs)
		}
	}
}
