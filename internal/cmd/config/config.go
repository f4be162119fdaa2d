// Package config provides CLI commands for managing searcher configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/searcher/internal/config"
	"github.com/Iron-Ham/searcher/internal/dom"
	"github.com/Iron-Ham/searcher/internal/errors"
	tuiconfig "github.com/Iron-Ham/searcher/internal/tui/config"
	"github.com/Iron-Ham/searcher/internal/tui/styles"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

// runInteractive starts the interactive editor; replaced in tests.
var runInteractive = tuiconfig.Run

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify searcher configuration",
	Long: `View or modify searcher configuration.

Without arguments, opens an interactive configuration UI.
Use 'config show' to display configuration non-interactively.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigInteractive,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  searcher config set searcher.item_selector "ul > li"
  searcher config set searcher.highlight '<span class="hl">$1</span>'
  searcher config set tui.theme dracula

Valid keys:
  searcher.container_selector - Selector for the containers to filter
  searcher.item_selector      - Selector for the items inside a container
  searcher.text_selector      - Selector for the text inside an item (empty = item)
  searcher.input_selector     - Selector for the document's search input
  searcher.case_sensitive     - Match case-sensitively (true/false)
  searcher.highlight          - Highlight template, $1 is the match (empty = off)
  searcher.toggle             - How items are hidden
                                Options: display, hidden, class
  searcher.toggle_class       - Class added to hidden items in class mode
  tui.theme                   - Color theme for the browser
  tui.highlight_style         - How matches are drawn in the terminal
                                Options: background, underline, bold, reverse
  tui.show_hidden             - List hidden items dimmed (true/false)
  logging.enabled             - Write a debug log (true/false)
  logging.level               - Minimum log level: debug, info, warn, error
  logging.dir                 - Log directory
  logging.max_size_mb         - Rotate the log at this size
  logging.max_backups         - Rotated log files to keep
  logging.compress            - Gzip rotated log files (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/searcher/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  searcher config reset                  # Reset all to defaults
  searcher config reset searcher.toggle  # Reset only searcher.toggle to default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)

	configSetCmd.ValidArgsFunction = completeKeys
	configResetCmd.ValidArgsFunction = completeKeys
}

// Register adds all config-related commands to the given parent command.
// This is the main entry point for integrating the config subpackage with
// the root command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyTypes maps every settable key to the kind of value it takes
var keyTypes = map[string]string{
	"searcher.container_selector": "selector",
	"searcher.item_selector":      "selector",
	"searcher.text_selector":      "optional_selector",
	"searcher.input_selector":     "optional_selector",
	"searcher.case_sensitive":     "bool",
	"searcher.highlight":          "string",
	"searcher.toggle":             "toggle",
	"searcher.toggle_class":       "string",
	"tui.theme":                   "theme",
	"tui.highlight_style":         "highlight_style",
	"tui.show_hidden":             "bool",
	"logging.enabled":             "bool",
	"logging.level":               "level",
	"logging.dir":                 "string",
	"logging.max_size_mb":         "int",
	"logging.max_backups":         "int",
	"logging.compress":            "bool",
}

func runConfigInteractive(cmd *cobra.Command, args []string) error {
	return runInteractive()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := appconfig.Get()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	// Searcher settings
	fmt.Fprintln(out, "searcher:")
	fmt.Fprintf(out, "  container_selector: %s\n", cfg.Searcher.ContainerSelector)
	fmt.Fprintf(out, "  item_selector: %s\n", cfg.Searcher.ItemSelector)
	fmt.Fprintf(out, "  text_selector: %s\n", cfg.Searcher.TextSelector)
	fmt.Fprintf(out, "  input_selector: %s\n", cfg.Searcher.InputSelector)
	fmt.Fprintf(out, "  case_sensitive: %v\n", cfg.Searcher.CaseSensitive)
	fmt.Fprintf(out, "  highlight: %s\n", cfg.Searcher.Highlight)
	fmt.Fprintf(out, "  toggle: %s\n", cfg.Searcher.Toggle)
	fmt.Fprintf(out, "  toggle_class: %s\n", cfg.Searcher.ToggleClass)

	// TUI settings
	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  highlight_style: %s\n", cfg.TUI.HighlightStyle)
	fmt.Fprintf(out, "  show_hidden: %v\n", cfg.TUI.ShowHidden)

	// Logging settings
	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", cfg.Logging.ResolveDir())
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)
	fmt.Fprintf(out, "  compress: %v\n", cfg.Logging.Compress)

	return nil
}

// parseValue validates value for key and converts it to the stored type
func parseValue(key, value string) (any, error) {
	keyType, ok := keyTypes[key]
	if !ok {
		return nil, errors.NewNotFoundError("configuration key", key)
	}

	invalid := func(format string, args ...any) error {
		return errors.NewValidationError(fmt.Sprintf(format, args...)).WithField(key).WithValue(value)
	}
	oneOf := func(options []string) (any, error) {
		if !slices.Contains(options, value) {
			return nil, invalid("valid options: %s", strings.Join(options, ", "))
		}
		return value, nil
	}

	switch keyType {
	case "selector", "optional_selector":
		if value == "" {
			if keyType == "selector" {
				return nil, invalid("must not be empty")
			}
			return value, nil
		}
		if err := dom.CompileSelector(value); err != nil {
			return nil, errors.NewValidationError("selector does not compile").
				WithField(key).WithValue(value).WithCause(err)
		}
		return value, nil
	case "toggle":
		return oneOf(dom.ToggleModes())
	case "highlight_style":
		return oneOf(appconfig.ValidHighlightStyles())
	case "level":
		return oneOf(appconfig.ValidLogLevels())
	case "theme":
		// Discover custom themes first
		_, _ = styles.DiscoverCustomThemes(appconfig.ThemesDir())
		if !styles.IsValidTheme(value) {
			return nil, invalid("unknown theme, valid options: %s", strings.Join(styles.ValidThemes(), ", "))
		}
		return value, nil
	case "bool":
		if value != "true" && value != "false" {
			return nil, invalid("expected true or false")
		}
		return value == "true", nil
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return nil, invalid("expected integer")
		}
		if intVal < 0 {
			return nil, invalid("must be non-negative")
		}
		return intVal, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]

	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)

	return nil
}

// writeConfig writes viper's settings to the default config file
func writeConfig() (string, error) {
	// Ensure config directory exists
	configDir := appconfig.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

const defaultConfigContent = `# Searcher Configuration

# Search behavior
searcher:
  # Elements a searcher attaches to
  container_selector: table
  # Items shown or hidden inside a container
  item_selector: tbody > tr
  # Text-bearing elements inside an item (empty = the item itself)
  text_selector: td
  # The document's own search input, if any
  input_selector: ""
  # Match case-sensitively
  case_sensitive: false
  # Markup wrapped around each match; $1 is the matched text (empty = off)
  highlight: <mark>$1</mark>
  # How non-matching items are hidden: display, hidden or class
  toggle: display
  # Class added to hidden items when toggle is class
  toggle_class: searcher-hidden

# Terminal browser settings
tui:
  # Color theme: default, monokai, dracula, nord or a custom theme
  theme: default
  # How matches are drawn: background, underline, bold or reverse
  highlight_style: background
  # List non-matching items dimmed instead of omitting them
  show_hidden: false

# Debug logging
logging:
  enabled: false
  # debug, info, warn or error
  level: info
  # Log directory (empty = logs/ under the config directory)
  dir: ""
  max_size_mb: 10
  max_backups: 3
  compress: false
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'searcher config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit this file to customize searcher's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := appconfig.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/searcher/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: SEARCHER_* (e.g., SEARCHER_SEARCHER_ITEM_SELECTOR)")

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file exists, if not create it
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	// Open the editor
	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

// findEditor picks $EDITOR, $VISUAL or the first common editor on PATH
func findEditor() (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor, nil
	}
	for _, e := range []string{"vim", "nano", "vi"} {
		if _, err := execLookPath(e); err == nil {
			return e, nil
		}
	}
	return "", fmt.Errorf("no editor found. Set $EDITOR environment variable")
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	defaults := appconfig.DefaultValues()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		// Reset all values
		for key, value := range defaults {
			viper.Set(key, value)
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		// Reset specific key
		key := args[0]
		value, ok := defaults[key]
		if !ok {
			return errors.NewNotFoundError("configuration key", key)
		}
		viper.Set(key, value)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// sortedKeys returns the settable keys in order, for listings and completion
func sortedKeys() []string {
	keys := make([]string, 0, len(keyTypes))
	for key := range keyTypes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// completeKeys completes the key argument of set and reset
func completeKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return sortedKeys(), cobra.ShellCompDirectiveNoFileComp
}
