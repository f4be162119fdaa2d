package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	appconfig "github.com/Iron-Ham/searcher/internal/config"
	"github.com/Iron-Ham/searcher/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the searcher browser.

Searcher supports both built-in themes and custom user-defined themes.
Custom themes are stored in ~/.config/searcher/themes/ as YAML files.

Use 'theme list' to see all available themes.
Use 'theme export' to create a template for custom themes.
Use 'theme info' to view details about a specific theme.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  searcher config theme export default                # Print default theme to stdout
  searcher config theme export dracula my-theme.yaml  # Save dracula theme to file`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show information about a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the custom themes directory path",
	RunE:  runThemePath,
}

var themeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new custom theme from the default template",
	Long: `Create a new custom theme file in your themes directory.

The new file starts from the default palette. Edit it, then select it with
'searcher config set tui.theme <name>'.

Example:
  searcher config theme create solarized
  # Creates ~/.config/searcher/themes/solarized.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeCreate,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	themeCmd.AddCommand(themePathCmd)
	themeCmd.AddCommand(themeCreateCmd)
	configCmd.AddCommand(themeCmd)
}

// discoverThemes loads the custom themes from the themes directory
func discoverThemes() []error {
	_, errs := styles.DiscoverCustomThemes(appconfig.ThemesDir())
	return errs
}

// unknownThemeError explains why name cannot be used, pointing at its load
// error when the file exists but is broken.
func unknownThemeError(name string, loadErrs []error) error {
	for _, err := range loadErrs {
		errStr := err.Error()
		if strings.HasPrefix(errStr, name+".yaml:") || strings.HasPrefix(errStr, name+".yml:") || strings.HasPrefix(errStr, name+":") {
			return fmt.Errorf("theme '%s' exists but failed to load: %v\n\nFix the errors in your theme file and try again", name, err)
		}
	}
	return fmt.Errorf("unknown theme: %s\n\nRun 'searcher config theme list' to see available themes.\nCustom themes should be placed in: %s", name, appconfig.ThemesDir())
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Discover custom themes and report any load errors
	if loadErrs := discoverThemes(); len(loadErrs) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: Some themes failed to load:")
		for _, err := range loadErrs {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr())
	}

	fmt.Fprintln(out, "Available themes:")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	customNames := styles.CustomThemeNames()
	if len(customNames) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Custom themes:")
		sort.Strings(customNames)
		for _, name := range customNames {
			theme := styles.GetCustomTheme(styles.ThemeName(name))
			if theme == nil {
				continue
			}
			if theme.Author != "" {
				fmt.Fprintf(out, "  - %s (by %s)\n", name, theme.Author)
			} else {
				fmt.Fprintf(out, "  - %s\n", name)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Custom themes directory: %s\n", appconfig.ThemesDir())

	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	themeName := args[0]

	loadErrs := discoverThemes()
	if !styles.IsValidTheme(themeName) {
		return unknownThemeError(themeName, loadErrs)
	}

	data, err := styles.ExportTheme(styles.ThemeName(themeName))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	out := cmd.OutOrStdout()

	loadErrs := discoverThemes()
	if !styles.IsValidTheme(themeName) {
		return unknownThemeError(themeName, loadErrs)
	}

	fmt.Fprintf(out, "Theme: %s\n", themeName)
	fmt.Fprintln(out)

	if styles.IsBuiltinTheme(themeName) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: Custom")
		if theme := styles.GetCustomTheme(styles.ThemeName(themeName)); theme != nil {
			if theme.Author != "" {
				fmt.Fprintf(out, "Author: %s\n", theme.Author)
			}
			if theme.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", theme.Description)
			}
		}
	}

	palette := styles.GetPalette(styles.ThemeName(themeName))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Base Colors:")
	fmt.Fprintf(out, "  Primary:   %s\n", palette.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", palette.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", palette.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", palette.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", palette.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", palette.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", palette.Text)
	fmt.Fprintf(out, "  Border:    %s\n", palette.Border)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Match Colors:")
	fmt.Fprintf(out, "  Background: %s\n", palette.MatchBg)
	fmt.Fprintf(out, "  Foreground: %s\n", palette.MatchFg)

	return nil
}

func runThemePath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	themesDir := appconfig.ThemesDir()
	fmt.Fprintln(out, themesDir)

	if _, err := os.Stat(themesDir); os.IsNotExist(err) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Note: This directory does not exist yet.")
		fmt.Fprintln(out, "It will be created when you add your first custom theme.")
	}

	return nil
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	if name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\:*?\"<>|") {
		return fmt.Errorf("theme name contains invalid characters")
	}
	if styles.IsBuiltinTheme(name) {
		return fmt.Errorf("cannot create custom theme with built-in name '%s'", name)
	}

	themesDir := appconfig.ThemesDir()
	themePath := filepath.Join(themesDir, name+".yaml")
	if _, err := os.Stat(themePath); err == nil {
		return fmt.Errorf("theme '%s' already exists at %s", name, themePath)
	}

	palette := styles.DefaultPalette()
	theme := &styles.ThemeFile{
		Name:        capitalizeFirst(name),
		Description: "A custom searcher theme",
		Version:     "1",
		Colors: styles.ThemeColors{
			Primary:   string(palette.Primary),
			Secondary: string(palette.Secondary),
			Warning:   string(palette.Warning),
			Error:     string(palette.Error),
			Muted:     string(palette.Muted),
			Surface:   string(palette.Surface),
			Text:      string(palette.Text),
			Border:    string(palette.Border),
		},
	}

	if err := styles.SaveTheme(themesDir, name, theme); err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}

	fmt.Fprintf(out, "Created new theme: %s\n", themePath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Edit this file to customize your theme colors.")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "To use your new theme, run:\n")
	fmt.Fprintf(out, "  searcher config set tui.theme %s\n", name)

	return nil
}

// capitalizeFirst capitalizes the first character of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
