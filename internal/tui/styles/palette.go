package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName names a built-in or custom color theme.
type ThemeName string

const (
	ThemeDefault ThemeName = "default"
	ThemeMonokai ThemeName = "monokai"
	ThemeDracula ThemeName = "dracula"
	ThemeNord    ThemeName = "nord"
)

// ColorPalette is the set of colors a theme provides.
type ColorPalette struct {
	Primary   lipgloss.Color // active elements and emphasis
	Secondary lipgloss.Color // prompts and success messages
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color // de-emphasized text and hidden items
	Surface   lipgloss.Color // panel backgrounds
	Text      lipgloss.Color
	Border    lipgloss.Color

	// Drawn behind and over highlighted matches
	MatchBg lipgloss.Color
	MatchFg lipgloss.Color
}

// builtinOrder fixes the listing order of the built-in themes.
var builtinOrder = []ThemeName{ThemeDefault, ThemeMonokai, ThemeDracula, ThemeNord}

var builtinPalettes = map[ThemeName]ColorPalette{
	ThemeDefault: {
		Primary: "#A78BFA", Secondary: "#10B981", Warning: "#F59E0B", Error: "#F87171",
		Muted: "#9CA3AF", Surface: "#1F2937", Text: "#F9FAFB", Border: "#6B7280",
		MatchBg: "#854D0E", MatchFg: "#FEF3C7",
	},
	ThemeMonokai: {
		Primary: "#F92672", Secondary: "#A6E22E", Warning: "#E6DB74", Error: "#F92672",
		Muted: "#75715E", Surface: "#272822", Text: "#F8F8F2", Border: "#49483E",
		MatchBg: "#49483E", MatchFg: "#E6DB74",
	},
	ThemeDracula: {
		Primary: "#BD93F9", Secondary: "#50FA7B", Warning: "#F1FA8C", Error: "#FF5555",
		Muted: "#6272A4", Surface: "#282A36", Text: "#F8F8F2", Border: "#44475A",
		MatchBg: "#44475A", MatchFg: "#F1FA8C",
	},
	ThemeNord: {
		Primary: "#88C0D0", Secondary: "#A3BE8C", Warning: "#EBCB8B", Error: "#BF616A",
		Muted: "#4C566A", Surface: "#2E3440", Text: "#ECEFF4", Border: "#3B4252",
		MatchBg: "#3B4252", MatchFg: "#EBCB8B",
	},
}

// BuiltinThemes returns the built-in theme names.
func BuiltinThemes() []string {
	names := make([]string, len(builtinOrder))
	for i, name := range builtinOrder {
		names[i] = string(name)
	}
	return names
}

// ValidThemes returns the built-in theme names followed by the custom ones.
func ValidThemes() []string {
	return append(BuiltinThemes(), CustomThemeNames()...)
}

// IsValidTheme reports whether name is a built-in or loaded custom theme.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name) || IsCustomTheme(name)
}

// DefaultPalette returns a copy of the default theme's palette.
func DefaultPalette() *ColorPalette {
	p := builtinPalettes[ThemeDefault]
	return &p
}

// GetPalette returns the palette for a theme name. Custom themes take
// precedence; unknown names fall back to the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	if custom := GetCustomTheme(name); custom != nil {
		return custom.ToPalette()
	}
	p, ok := builtinPalettes[name]
	if !ok {
		return DefaultPalette()
	}
	return &p
}
