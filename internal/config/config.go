package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/searcher/internal/dom"
	"github.com/Iron-Ham/searcher/internal/logging"
	"github.com/Iron-Ham/searcher/internal/searcher"
)

// Config represents the complete searcher configuration
type Config struct {
	Searcher SearcherConfig `mapstructure:"searcher"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SearcherConfig controls how documents are filtered
type SearcherConfig struct {
	// ContainerSelector locates the containers to attach to (default: "table")
	ContainerSelector string `mapstructure:"container_selector"`
	// ItemSelector locates the items inside a container (default: "tbody > tr")
	ItemSelector string `mapstructure:"item_selector"`
	// TextSelector locates the text elements inside an item (default: "td").
	// Empty means the item itself is searched.
	TextSelector string `mapstructure:"text_selector"`
	// InputSelector locates the input control of the document, if any
	InputSelector string `mapstructure:"input_selector"`
	// CaseSensitive disables case-insensitive matching
	CaseSensitive bool `mapstructure:"case_sensitive"`
	// Highlight is the markup template wrapped around matches. Empty disables
	// highlighting.
	Highlight string `mapstructure:"highlight"`
	// Toggle is how non-matching items are hidden
	// Options: "display", "hidden", "class"
	Toggle string `mapstructure:"toggle"`
	// ToggleClass is the class added to hidden items in "class" mode
	ToggleClass string `mapstructure:"toggle_class"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	Theme string `mapstructure:"theme"`
	// HighlightStyle is how matches are drawn
	// Options: "background", "underline", "bold", "reverse"
	HighlightStyle string `mapstructure:"highlight_style"`
	// ShowHidden lists hidden items dimmed instead of omitting them
	ShowHidden bool `mapstructure:"show_hidden"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logs are written to a file (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the log directory (default: <config dir>/logs)
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated log files
	Compress bool `mapstructure:"compress"`
}

// ResolveDir returns the absolute log directory, expanding a leading ~.
func (c *LoggingConfig) ResolveDir() string {
	path := c.Dir
	if path == "" {
		return filepath.Join(ConfigDir(), "logs")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

// Rotation returns the rotation settings for the log writer.
func (c *LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Searcher: SearcherConfig{
			ContainerSelector: "table",
			ItemSelector:      searcher.DefaultItemSelector,
			TextSelector:      searcher.DefaultTextSelector,
			InputSelector:     "",
			CaseSensitive:     false,
			Highlight:         "<mark>$1</mark>",
			Toggle:            dom.ToggleDisplay,
			ToggleClass:       dom.DefaultToggleClass,
		},
		TUI: TUIConfig{
			Theme:          "default",
			HighlightStyle: "background",
			ShowHidden:     false,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
		},
	}
}

// DefaultValues returns the default of every settable key, keyed by its
// dotted viper name.
func DefaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"searcher.container_selector": d.Searcher.ContainerSelector,
		"searcher.item_selector":      d.Searcher.ItemSelector,
		"searcher.text_selector":      d.Searcher.TextSelector,
		"searcher.input_selector":     d.Searcher.InputSelector,
		"searcher.case_sensitive":     d.Searcher.CaseSensitive,
		"searcher.highlight":          d.Searcher.Highlight,
		"searcher.toggle":             d.Searcher.Toggle,
		"searcher.toggle_class":       d.Searcher.ToggleClass,

		"tui.theme":           d.TUI.Theme,
		"tui.highlight_style": d.TUI.HighlightStyle,
		"tui.show_hidden":     d.TUI.ShowHidden,

		"logging.enabled":     d.Logging.Enabled,
		"logging.level":       d.Logging.Level,
		"logging.dir":         d.Logging.Dir,
		"logging.max_size_mb": d.Logging.MaxSizeMB,
		"logging.max_backups": d.Logging.MaxBackups,
		"logging.compress":    d.Logging.Compress,
	}
}

// SetDefaults registers the default values with viper
func SetDefaults() {
	for key, value := range DefaultValues() {
		viper.SetDefault(key, value)
	}
}

// Load reads the configuration from viper and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the loaded configuration, or the defaults if it is invalid
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the configuration directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "searcher")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".searcher"
	}
	return filepath.Join(home, ".config", "searcher")
}

// ConfigFile returns the default config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ThemesDir returns the directory searched for custom theme files
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

// SearchOptions converts the searcher section into options for
// searcher.Registry.Attach.
func (c *Config) SearchOptions() (searcher.Options, error) {
	toggle, err := dom.NewToggle(c.Searcher.Toggle, c.Searcher.ToggleClass)
	if err != nil {
		return searcher.Options{}, err
	}

	return searcher.Options{
		ItemSelector:  searcher.Ptr(c.Searcher.ItemSelector),
		TextSelector:  searcher.Ptr(c.Searcher.TextSelector),
		InputSelector: searcher.Ptr(c.Searcher.InputSelector),
		CaseSensitive: searcher.Ptr(c.Searcher.CaseSensitive),
		Highlight:     searcher.Ptr(c.Searcher.Highlight),
		Toggle:        toggle,
	}, nil
}
