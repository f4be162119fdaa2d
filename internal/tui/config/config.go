// Package config implements the interactive configuration editor started by
// 'searcher config'.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/searcher/internal/config"
	"github.com/Iron-Ham/searcher/internal/dom"
	"github.com/Iron-Ham/searcher/internal/errors"
	"github.com/Iron-Ham/searcher/internal/tui/styles"
	"github.com/Iron-Ham/searcher/internal/util"
)

// itemKind selects how an item is edited and validated.
type itemKind string

const (
	kindString   itemKind = "string"
	kindSelector itemKind = "selector"
	kindBool     itemKind = "bool"
	kindInt      itemKind = "int"
	kindSelect   itemKind = "select"
)

const labelWidth = 25

// ConfigItem is one editable configuration key
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Kind        itemKind
	Options     []string // kindSelect only
	Required    bool     // empty values are rejected
}

// Category groups the items of one config section
type Category struct {
	Name  string
	Items []ConfigItem
}

func field(kind itemKind, key, label, description string) ConfigItem {
	return ConfigItem{Key: key, Label: label, Description: description, Kind: kind}
}

func required(item ConfigItem) ConfigItem {
	item.Required = true
	return item
}

func choice(key, label, description string, options []string) ConfigItem {
	item := field(kindSelect, key, label, description)
	item.Options = options
	return item
}

func categories() []Category {
	return []Category{
		{Name: "Searcher", Items: []ConfigItem{
			required(field(kindSelector, "searcher.container_selector", "Container Selector",
				"CSS selector for the elements a searcher attaches to")),
			required(field(kindSelector, "searcher.item_selector", "Item Selector",
				"CSS selector for the items shown or hidden inside a container")),
			field(kindSelector, "searcher.text_selector", "Text Selector",
				"CSS selector for the text inside an item (empty = the item itself)"),
			field(kindSelector, "searcher.input_selector", "Input Selector",
				"CSS selector for the document's search input (empty = none)"),
			field(kindBool, "searcher.case_sensitive", "Case Sensitive",
				"Match the search term case-sensitively"),
			field(kindString, "searcher.highlight", "Highlight Template",
				"Markup wrapped around each match; $1 is the matched text (empty = no highlighting)"),
			choice("searcher.toggle", "Toggle Mode",
				"How non-matching items are hidden", dom.ToggleModes()),
			field(kindString, "searcher.toggle_class", "Toggle Class",
				"Class added to hidden items in class mode"),
		}},
		{Name: "TUI", Items: []ConfigItem{
			choice("tui.theme", "Theme",
				"Color theme for the browser", styles.ValidThemes()),
			choice("tui.highlight_style", "Highlight Style",
				"How matches are drawn in the terminal", config.ValidHighlightStyles()),
			field(kindBool, "tui.show_hidden", "Show Hidden Items",
				"List non-matching items dimmed instead of omitting them"),
		}},
		{Name: "Logging", Items: []ConfigItem{
			field(kindBool, "logging.enabled", "Enabled",
				"Write a debug log of search passes"),
			choice("logging.level", "Level",
				"Minimum level written to the log", config.ValidLogLevels()),
			field(kindString, "logging.dir", "Directory",
				"Log directory (empty = logs/ under the config directory)"),
			field(kindInt, "logging.max_size_mb", "Max Size (MB)",
				"Rotate the log file once it reaches this size"),
			field(kindInt, "logging.max_backups", "Max Backups",
				"Number of rotated log files to keep"),
			field(kindBool, "logging.compress", "Compress Backups",
				"Gzip rotated log files"),
		}},
	}
}

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	categories    []Category
	categoryIndex int
	itemIndex     int
	scrollOffset  int
	width         int
	height        int

	editing     bool
	textInput   textinput.Model
	selectIndex int

	errorMsg string
	infoMsg  string
	quitting bool
	saved    bool
}

// New creates a config model positioned on the first item
func New() Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		categories: categories(),
		textInput:  ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.updateEditing(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			if m.saved {
				m.infoMsg = "Changes saved!"
			}
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			m.step(-1)
		case "down", "j":
			m.step(1)
		case "ctrl+d", "pgdown":
			m.moveSelection(m.availableLines() / 2)
		case "ctrl+u", "pgup":
			m.moveSelection(-m.availableLines() / 2)
		case "g", "home":
			m.categoryIndex, m.itemIndex = 0, 0
		case "G", "end":
			m.categoryIndex = len(m.categories) - 1
			m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
		case "tab":
			m.jumpCategory(1)
		case "shift+tab":
			m.jumpCategory(-1)
		case "enter", " ":
			m.startEditing()
		case "r":
			m.resetCurrentToDefault()
		}
	default:
		return m, nil
	}

	m.ensureSelectionVisible(m.availableLines())
	return m, nil
}

// step moves the cursor by one item, wrapping into the neighbouring
// category and around the ends of the list.
func (m *Model) step(delta int) {
	m.itemIndex += delta
	switch {
	case m.itemIndex < 0:
		m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
		m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
	case m.itemIndex >= len(m.categories[m.categoryIndex].Items):
		m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
		m.itemIndex = 0
	}
}

// jumpCategory selects the first item of the category delta steps away.
func (m *Model) jumpCategory(delta int) {
	n := len(m.categories)
	m.categoryIndex = ((m.categoryIndex+delta)%n + n) % n
	m.itemIndex = 0
}

// moveSelection moves the selection by delta items without wrapping.
func (m *Model) moveSelection(delta int) {
	for ; delta > 0; delta-- {
		if m.itemIndex < len(m.categories[m.categoryIndex].Items)-1 {
			m.itemIndex++
		} else if m.categoryIndex < len(m.categories)-1 {
			m.categoryIndex++
			m.itemIndex = 0
		}
	}
	for ; delta < 0; delta++ {
		if m.itemIndex > 0 {
			m.itemIndex--
		} else if m.categoryIndex > 0 {
			m.categoryIndex--
			m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
		}
	}
}

// startEditing flips booleans in place and opens the editor for any
// other kind.
func (m *Model) startEditing() {
	item := m.currentItem()
	switch item.Kind {
	case kindBool:
		viper.Set(item.Key, !viper.GetBool(item.Key))
		m.saveConfig()
	case kindSelect:
		m.editing = true
		m.selectIndex = max(0, slices.Index(item.Options, viper.GetString(item.Key)))
	default:
		m.editing = true
		m.textInput.SetValue(valueOf(item))
		m.textInput.Focus()
	}
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch key := msg.String(); key {
	case "esc":
		m.stopEditing()
		return m, nil
	case "enter":
		value := m.textInput.Value()
		if item.Kind == kindSelect {
			value = item.Options[m.selectIndex]
		}
		if err := m.validateAndSet(item, value); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.saveConfig()
		m.stopEditing()
		return m, nil
	case "up", "k", "down", "j":
		if item.Kind == kindSelect {
			n := len(item.Options)
			if key == "up" || key == "k" {
				m.selectIndex = (m.selectIndex - 1 + n) % n
			} else {
				m.selectIndex = (m.selectIndex + 1) % n
			}
			return m, nil
		}
	}

	if item.Kind == kindSelect {
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.textInput.SetValue("")
}

// availableLines is the number of item lines that fit between the header
// and the description, help and message area.
func (m Model) availableLines() int {
	return max(5, m.height-12)
}

// totalLines counts the lines of the category list: a header, the items
// and a blank line per category.
func (m Model) totalLines() int {
	total := 0
	for _, cat := range m.categories {
		total += len(cat.Items) + 2
	}
	return total
}

// currentSelectionLine is the line of the selected item in the category list.
func (m Model) currentSelectionLine() int {
	line := 0
	for _, cat := range m.categories[:m.categoryIndex] {
		line += len(cat.Items) + 2
	}
	return line + 1 + m.itemIndex
}

func (m *Model) ensureSelectionVisible(available int) {
	line := m.currentSelectionLine()
	if line < m.scrollOffset {
		m.scrollOffset = line
	}
	if line >= m.scrollOffset+available {
		m.scrollOffset = line - available + 1
	}
	m.scrollOffset = max(0, min(m.scrollOffset, m.totalLines()-available))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(styles.Header.Width(m.width - 4).Render("Searcher Configuration"))
	b.WriteString("\n\n")

	path := viper.ConfigFileUsed()
	if path == "" {
		path = config.ConfigFile() + " (not created)"
	}
	b.WriteString(styles.Muted.Render("Config file: " + path))
	b.WriteString("\n\n")

	m.writeList(&b)

	if m.editing {
		b.WriteString("\n")
		b.WriteString(m.renderEditor())
	} else {
		b.WriteString(styles.Muted.Render(m.currentItem().Description))
		b.WriteString("\n")
	}

	if m.errorMsg != "" {
		b.WriteString("\n" + styles.ErrorMsg.Render("Error: "+m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n" + styles.SuccessMsg.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// writeList renders the visible window of the category list, with markers
// when lines are scrolled out of view.
func (m Model) writeList(b *strings.Builder) {
	var lines []string
	for ci, cat := range m.categories {
		active := ci == m.categoryIndex
		heading := styles.Muted.Bold(true)
		if active {
			heading = styles.Primary.Bold(true)
		}
		lines = append(lines, heading.Render("[ "+cat.Name+" ]"))
		for ii, item := range cat.Items {
			lines = append(lines, renderItem(item, active && ii == m.itemIndex))
		}
		lines = append(lines, "")
	}

	start := min(m.scrollOffset, len(lines))
	end := min(start+m.availableLines(), len(lines))

	if start > 0 {
		b.WriteString(styles.Muted.Render("  ▲ more above") + "\n")
	}
	for _, line := range lines[start:end] {
		b.WriteString(line + "\n")
	}
	if end < len(lines) {
		b.WriteString(styles.Muted.Render("  ▼ more below") + "\n")
	}
}

func renderItem(item ConfigItem, selected bool) string {
	value := valueOf(item)
	if value == "" {
		value = "(none)"
	}
	label := fmt.Sprintf("%-*s", labelWidth, util.TruncateANSI(item.Label, labelWidth))

	if selected {
		return fmt.Sprintf("  %s %s  %s",
			styles.Secondary.Render(">"), styles.Text.Bold(true).Render(label), styles.Primary.Render(value))
	}
	return fmt.Sprintf("    %s  %s", styles.Muted.Render(label), styles.Text.Render(value))
}

func (m Model) renderEditor() string {
	item := m.currentItem()
	var content strings.Builder

	if item.Kind == kindSelect {
		fmt.Fprintf(&content, "Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content.WriteString(styles.DropdownItemSelected.Render(" > "+opt+" ") + "\n")
			} else {
				content.WriteString(styles.DropdownItem.Render("   "+opt+" ") + "\n")
			}
		}
		content.WriteString("\n" + styles.Muted.Render("j/k or arrows to select, enter to confirm, esc to cancel"))
	} else {
		fmt.Fprintf(&content, "Edit %s:\n\n", item.Label)
		content.WriteString(m.textInput.View())
		content.WriteString("\n\n" + styles.Muted.Render("enter to save, esc to cancel"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.PrimaryColor).
		Padding(1, 2).
		Width(50).
		Render(content.String())
}

func (m Model) renderHelp() string {
	key := styles.HelpKey.Render
	if m.editing {
		return styles.HelpBar.Render(key("enter") + " save  " + key("esc") + " cancel")
	}
	return styles.HelpBar.Render(
		key("j/k") + " navigate  " +
			key("tab") + " next category  " +
			key("enter/space") + " edit  " +
			key("r") + " reset  " +
			key("q") + " quit",
	)
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

// valueOf returns the current value of item as it is shown and edited.
func valueOf(item ConfigItem) string {
	switch item.Kind {
	case kindBool:
		return strconv.FormatBool(viper.GetBool(item.Key))
	case kindInt:
		return strconv.Itoa(viper.GetInt(item.Key))
	default:
		return viper.GetString(item.Key)
	}
}

func (m *Model) validateAndSet(item ConfigItem, value string) error {
	invalid := func(message string) error {
		return errors.NewValidationError(message).WithField(item.Key).WithValue(value)
	}
	if item.Required && strings.TrimSpace(value) == "" {
		return invalid(strings.ToLower(item.Label) + " is required")
	}

	var parsed any = value
	switch item.Kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid("expected integer value")
		}
		if n < 0 {
			return invalid("value must be non-negative")
		}
		parsed = n
	case kindBool:
		if value != "true" && value != "false" {
			return invalid("expected true or false")
		}
		parsed = value == "true"
	case kindSelect:
		if !slices.Contains(item.Options, value) {
			return invalid("invalid option")
		}
	case kindSelector:
		if value != "" {
			if err := dom.CompileSelector(value); err != nil {
				return errors.NewValidationError("selector does not compile").
					WithField(item.Key).WithValue(value).WithCause(err)
			}
		}
	}

	viper.Set(item.Key, parsed)
	return nil
}

func (m *Model) saveConfig() {
	if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to create config directory: %v", err)
		return
	}
	if err := viper.WriteConfigAs(config.ConfigFile()); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save config: %v", err)
		return
	}

	m.infoMsg = "Saved!"
	m.saved = true
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()
	value, ok := config.DefaultValues()[item.Key]
	if !ok {
		return
	}

	viper.Set(item.Key, value)
	m.saveConfig()
	if m.errorMsg == "" {
		m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
	}
}

// Run starts the interactive config UI
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
