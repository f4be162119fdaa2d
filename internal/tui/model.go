// Package tui implements the interactive browser: a search box above the
// items of an HTML document, filtered live as the query is typed.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/searcher/internal/dom"
	"github.com/Iron-Ham/searcher/internal/errors"
	"github.com/Iron-Ham/searcher/internal/logging"
	"github.com/Iron-Ham/searcher/internal/searcher"
	"github.com/Iron-Ham/searcher/internal/tui/styles"
	"github.com/Iron-Ham/searcher/internal/util"
)

// Options configures the browser.
type Options struct {
	// Path is the HTML document to browse.
	Path string
	// ContainerSelector locates the containers to filter.
	ContainerSelector string
	// Search is applied to every container. Search.Input is ignored; the
	// browser supplies its own.
	Search searcher.Options
	// ToggleClass is the class that marks hidden items in class toggle mode.
	ToggleClass string
	// ShowHidden lists hidden items dimmed instead of omitting them.
	ShowHidden bool
	// Watch reloads the document when the file changes.
	Watch bool
	// Term is the initial query.
	Term   string
	Logger *logging.Logger
}

// Layout offsets for the item list: header, search bar, status and help.
const chromeHeight = 9

// Model is the Bubbletea model for the browser.
type Model struct {
	opts   Options
	logger *logging.Logger

	doc       *dom.Document
	registry  *searcher.Registry
	searchers []*searcher.Searcher
	// input is the query control every Searcher listens to. It is the
	// document's own input when Search.InputSelector finds one.
	input     *dom.Input
	textInput textinput.Model
	watcher   *fsnotify.Watcher
	path      string

	showHidden bool
	offset     int
	width      int
	height     int
	errorMsg   string
	infoMsg    string
	quitting   bool
}

// NewModel loads the document and attaches a Searcher to every container.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	if opts.ContainerSelector == "" {
		opts.ContainerSelector = "table"
	}

	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 200
	ti.Width = 40
	ti.PromptStyle = styles.SearchPrompt
	ti.SetValue(opts.Term)
	ti.Focus()

	m := Model{
		opts:       opts,
		logger:     logger.WithDocument(abs),
		path:       abs,
		textInput:  ti,
		showHidden: opts.ShowHidden,
	}
	if err := m.load(); err != nil {
		return Model{}, err
	}

	if opts.Watch {
		w, err := newWatcher(abs)
		if err != nil {
			m.Close()
			return Model{}, errors.Wrap(err, "failed to watch document")
		}
		m.watcher = w
	}
	return m, nil
}

// load parses the document and attaches fresh Searchers to it, detaching
// the previous ones. The current query is applied to the new document.
func (m *Model) load() error {
	doc, err := dom.Load(m.path)
	if err != nil {
		return err
	}
	doc.SetLogger(m.logger)

	containers := doc.Query(m.opts.ContainerSelector)
	if len(containers) == 0 {
		return errors.Wrapf(errors.ErrNoContainer, "selector %q in %s", m.opts.ContainerSelector, m.path)
	}

	if m.registry != nil {
		for _, s := range m.searchers {
			m.registry.Detach(s.Container())
		}
	}

	query := m.textInput.Value()
	input := m.input
	if input != nil && input.Element().Node().Parent != nil {
		// Belongs to the previous document.
		input = nil
	}
	if sel := m.opts.Search.InputSelector; sel != nil && *sel != "" {
		if in := doc.InputElement(*sel); in != nil {
			input = in
		}
	}
	if input == nil {
		input = dom.NewStandaloneInput()
	}
	input.SetValue(query)

	opts := m.opts.Search
	opts.Input = input

	registry := searcher.NewRegistry(doc, m.logger)
	m.doc = doc
	m.registry = registry
	m.input = input
	m.searchers = registry.AttachAll(containers, opts)

	m.logger.Info("document loaded",
		"containers", len(containers),
		"query", query,
	)
	return input.Dispatch(searcher.EventChange)
}

// Close releases the file watcher, if any.
func (m Model) Close() {
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return tea.Batch(textinput.Blink, m.watchCmd())
	}
	return textinput.Blink
}

// watchCmd waits for the next change to the document, or returns nil when
// the document is not watched.
func (m Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForChange(m.watcher, m.path)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = max(10, msg.Width-8)
		m.clampOffset()
		return m, nil

	case fileChangedMsg:
		m.errorMsg = ""
		if err := m.load(); err != nil {
			m.errorMsg = err.Error()
			m.logger.Error("reload failed", "error", err.Error())
		} else {
			m.infoMsg = "Reloaded " + filepath.Base(m.path)
		}
		m.clampOffset()
		return m, m.watchCmd()

	case watchErrMsg:
		m.errorMsg = msg.err.Error()
		return m, m.watchCmd()

	case tea.KeyMsg:
		m.infoMsg = ""

		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			m.setError(m.input.Dispatch(searcher.EventChange))
			return m, nil

		case "up", "ctrl+p":
			m.offset--
			m.clampOffset()
			return m, nil

		case "down", "ctrl+n":
			m.offset++
			m.clampOffset()
			return m, nil

		case "pgup":
			m.offset -= m.listHeight()
			m.clampOffset()
			return m, nil

		case "pgdown":
			m.offset += m.listHeight()
			m.clampOffset()
			return m, nil

		case "ctrl+t":
			m.showHidden = !m.showHidden
			m.clampOffset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() != m.input.Value() {
		m.setError(m.input.Edit(m.textInput.Value()))
		m.offset = 0
	}
	return m, cmd
}

func (m *Model) setError(err error) {
	if err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.errorMsg = ""
}

func (m Model) listHeight() int {
	if m.height == 0 {
		return 20
	}
	return max(1, m.height-chromeHeight)
}

func (m *Model) clampOffset() {
	rows := len(m.rows())
	m.offset = min(m.offset, rows-m.listHeight())
	m.offset = max(m.offset, 0)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.Header.Render("searcher  " + filepath.Base(m.path)))
	b.WriteString("\n")
	b.WriteString(styles.SearchBar.Render(m.textInput.View()))
	b.WriteString("\n")

	rows := m.rows()
	matched, total := m.counts()
	b.WriteString(styles.SearchInfo.Render(fmt.Sprintf("%d of %d items match", matched, total)))
	b.WriteString("\n\n")

	end := min(len(rows), m.offset+m.listHeight())
	for _, line := range rows[m.offset:end] {
		b.WriteString(util.TruncateANSI(line, m.width))
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(styles.Muted.Render("  no matching items"))
		b.WriteString("\n")
	}

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessMsg.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHelp() string {
	hidden := "show hidden"
	if m.showHidden {
		hidden = "omit hidden"
	}
	return styles.HelpBar.Render(
		styles.HelpKey.Render("type") + " filter  " +
			styles.HelpKey.Render("↑/↓") + " scroll  " +
			styles.HelpKey.Render("ctrl+t") + " " + hidden + "  " +
			styles.HelpKey.Render("esc") + " quit",
	)
}

// Query returns the current query.
func (m Model) Query() string {
	return m.input.Value()
}

// Document returns the loaded document.
func (m Model) Document() *dom.Document {
	return m.doc
}

// Searchers returns the attached Searchers, one per container.
func (m Model) Searchers() []*searcher.Searcher {
	return m.searchers
}
