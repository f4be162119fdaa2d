// Package styles holds the lipgloss styles shared by the terminal UIs.
package styles

import "github.com/charmbracelet/lipgloss"

// Highlight styles for matched text.
const (
	HighlightBackground = "background"
	HighlightUnderline  = "underline"
	HighlightBold       = "bold"
	HighlightReverse    = "reverse"
)

var (
	// Colors
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	ErrorColor     lipgloss.Color
	MutedColor     lipgloss.Color
	TextColor      lipgloss.Color
	BorderColor    lipgloss.Color

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	Title  lipgloss.Style
	Header lipgloss.Style

	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	ErrorMsg   lipgloss.Style
	SuccessMsg lipgloss.Style

	DropdownItem         lipgloss.Style
	DropdownItemSelected lipgloss.Style

	SearchBar    lipgloss.Style
	SearchPrompt lipgloss.Style
	SearchMatch  lipgloss.Style
	SearchInfo   lipgloss.Style

	// HiddenItem renders items the search hid, when they are shown at all.
	HiddenItem lipgloss.Style
)

// Styles is the full set of styles built from one palette.
type Styles struct {
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	ErrorColor     lipgloss.Color
	MutedColor     lipgloss.Color
	TextColor      lipgloss.Color
	BorderColor    lipgloss.Color

	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	Title  lipgloss.Style
	Header lipgloss.Style

	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	ErrorMsg   lipgloss.Style
	SuccessMsg lipgloss.Style

	DropdownItem         lipgloss.Style
	DropdownItemSelected lipgloss.Style

	SearchBar    lipgloss.Style
	SearchPrompt lipgloss.Style
	SearchMatch  lipgloss.Style
	SearchInfo   lipgloss.Style

	HiddenItem lipgloss.Style
}

// NewStyles builds the styles for palette p. highlight selects how matches
// are drawn; unknown values use the background style.
func NewStyles(p *ColorPalette, highlight string) *Styles {
	s := &Styles{
		PrimaryColor:   p.Primary,
		SecondaryColor: p.Secondary,
		ErrorColor:     p.Error,
		MutedColor:     p.Muted,
		TextColor:      p.Text,
		BorderColor:    p.Border,
	}

	s.Primary = lipgloss.NewStyle().Foreground(p.Primary)
	s.Secondary = lipgloss.NewStyle().Foreground(p.Secondary)
	s.Error = lipgloss.NewStyle().Foreground(p.Error)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Text = lipgloss.NewStyle().Foreground(p.Text)

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		MarginBottom(1)

	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Border).
		MarginBottom(1).
		PaddingBottom(1)

	s.HelpBar = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)

	s.HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary)

	s.ErrorMsg = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	s.SuccessMsg = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	s.DropdownItem = lipgloss.NewStyle().
		Foreground(p.Text).
		Padding(0, 1)

	s.DropdownItemSelected = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)

	s.SearchBar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)

	s.SearchPrompt = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	s.SearchMatch = matchStyle(p, highlight)

	s.SearchInfo = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginLeft(2)

	s.HiddenItem = lipgloss.NewStyle().
		Foreground(p.Muted).
		Faint(true)

	return s
}

func matchStyle(p *ColorPalette, highlight string) lipgloss.Style {
	switch highlight {
	case HighlightUnderline:
		return lipgloss.NewStyle().Underline(true).Foreground(p.MatchFg)
	case HighlightBold:
		return lipgloss.NewStyle().Bold(true).Foreground(p.MatchFg)
	case HighlightReverse:
		return lipgloss.NewStyle().Reverse(true)
	default:
		return lipgloss.NewStyle().Background(p.MatchBg).Foreground(p.MatchFg)
	}
}

var activeStyles *Styles

func init() {
	SetActiveTheme(ThemeDefault, HighlightBackground)
}

// SetActiveTheme rebuilds the package-level styles from the named theme.
//
// Not safe for concurrent use; call it before starting a program or from
// the Bubble Tea event loop.
func SetActiveTheme(name ThemeName, highlight string) {
	activeStyles = NewStyles(GetPalette(name), highlight)
	syncGlobalStyles()
}

// Active returns the styles currently in use.
func Active() *Styles {
	return activeStyles
}

func syncGlobalStyles() {
	s := activeStyles

	PrimaryColor = s.PrimaryColor
	SecondaryColor = s.SecondaryColor
	ErrorColor = s.ErrorColor
	MutedColor = s.MutedColor
	TextColor = s.TextColor
	BorderColor = s.BorderColor

	Primary = s.Primary
	Secondary = s.Secondary
	Error = s.Error
	Muted = s.Muted
	Text = s.Text

	Title = s.Title
	Header = s.Header

	HelpBar = s.HelpBar
	HelpKey = s.HelpKey

	ErrorMsg = s.ErrorMsg
	SuccessMsg = s.SuccessMsg

	DropdownItem = s.DropdownItem
	DropdownItemSelected = s.DropdownItemSelected

	SearchBar = s.SearchBar
	SearchPrompt = s.SearchPrompt
	SearchMatch = s.SearchMatch
	SearchInfo = s.SearchInfo

	HiddenItem = s.HiddenItem
}
