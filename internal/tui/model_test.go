package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/searcher/internal/dom"
	"github.com/Iron-Ham/searcher/internal/errors"
	"github.com/Iron-Ham/searcher/internal/searcher"
	"github.com/Iron-Ham/searcher/internal/testutil"
)

func writeDoc(t *testing.T, dir, content string) string {
	t.Helper()
	return testutil.WriteFile(t, dir, "menu.html", content)
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Path == "" {
		opts.Path = testutil.SetupTestDocument(t, testutil.Menu)
	}
	if opts.Search.Highlight == nil {
		opts.Search.Highlight = searcher.Ptr("<mark>$1</mark>")
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(Model), cmd
}

func plainRows(m Model) []string {
	rows := m.rows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = strings.TrimSpace(ansi.Strip(r))
	}
	return out
}

func TestModel_TypingFilters(t *testing.T) {
	m := newTestModel(t, Options{})

	if got := len(m.rows()); got != 3 {
		t.Fatalf("initial rows = %d, want 3", got)
	}

	m = typeText(m, "pie")
	if m.Query() != "pie" {
		t.Errorf("Query() = %q, want %q", m.Query(), "pie")
	}

	rows := plainRows(m)
	if len(rows) != 1 || rows[0] != "Apple Pie │ 4.50" {
		t.Errorf("rows = %q, want only the Apple Pie row", rows)
	}

	html := m.Document().String()
	if !strings.Contains(html, "Apple <mark>Pie</mark>") {
		t.Errorf("document should carry highlight markup, got:\n%s", html)
	}

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "1 of 3 items match") {
		t.Errorf("view should report match counts, got:\n%s", view)
	}
}

func TestModel_BackspaceRestores(t *testing.T) {
	m := newTestModel(t, Options{})

	m = typeText(m, "tart")
	if got := len(m.rows()); got != 1 {
		t.Fatalf("rows after typing = %d, want 1", got)
	}

	for i := 0; i < 4; i++ {
		m, _ = press(m, tea.KeyBackspace)
	}
	if m.Query() != "" {
		t.Errorf("Query() = %q, want empty", m.Query())
	}
	if got := len(m.rows()); got != 3 {
		t.Errorf("rows after clearing = %d, want 3", got)
	}
	if strings.Contains(m.Document().String(), "<mark>") {
		t.Error("clearing the query should remove all highlight markup")
	}
}

func TestModel_InitialTerm(t *testing.T) {
	m := newTestModel(t, Options{Term: "bread"})

	rows := plainRows(m)
	if len(rows) != 1 || !strings.HasPrefix(rows[0], "Banana Bread") {
		t.Errorf("rows = %q, want only the Banana Bread row", rows)
	}
}

func TestModel_ShowHidden(t *testing.T) {
	m := newTestModel(t, Options{})
	m = typeText(m, "cherry")

	m, _ = press(m, tea.KeyCtrlT)
	if !m.showHidden {
		t.Fatal("ctrl+t should show hidden items")
	}
	if got := len(m.rows()); got != 3 {
		t.Errorf("rows with hidden items = %d, want 3", got)
	}
	matched, total := m.counts()
	if matched != 1 || total != 3 {
		t.Errorf("counts() = %d, %d, want 1, 3", matched, total)
	}

	m, _ = press(m, tea.KeyCtrlT)
	if got := len(m.rows()); got != 1 {
		t.Errorf("rows after hiding again = %d, want 1", got)
	}
}

func TestModel_DocumentInput(t *testing.T) {
	m := newTestModel(t, Options{
		Search: searcher.Options{InputSelector: searcher.Ptr("#q")},
	})
	m = typeText(m, "tart")

	in := m.Document().InputElement("#q")
	if in == nil {
		t.Fatal("document input not found")
	}
	if in.Value() != "tart" {
		t.Errorf("document input value = %q, want %q", in.Value(), "tart")
	}
	if in.Subscribers() != 1 {
		t.Errorf("document input subscribers = %d, want 1", in.Subscribers())
	}
}

func TestModel_StandaloneInputWithoutMatch(t *testing.T) {
	m := newTestModel(t, Options{
		Search: searcher.Options{InputSelector: searcher.Ptr("#missing")},
	})
	m = typeText(m, "apple")

	if got := len(m.rows()); got != 1 {
		t.Errorf("rows = %d, want 1", got)
	}
	if m.Document().InputElement("#q").Value() != "" {
		t.Error("an unselected document input should not be edited")
	}
}

func TestModel_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, testutil.Menu)
	m := newTestModel(t, Options{Path: path})
	m = typeText(m, "pie")
	old := m.Searchers()[0]

	writeDoc(t, dir, testutil.WithRows(testutil.MenuRow("Pecan Pie", "6.00")))

	next, cmd := m.Update(fileChangedMsg{path: path})
	m = next.(Model)
	if cmd != nil {
		t.Error("an unwatched model should not wait for changes")
	}
	if m.errorMsg != "" {
		t.Fatalf("reload error: %s", m.errorMsg)
	}
	if m.Searchers()[0] == old {
		t.Error("reload should attach a fresh searcher")
	}

	matched, total := m.counts()
	if matched != 2 || total != 4 {
		t.Errorf("counts() after reload = %d, %d, want 2, 4", matched, total)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Reloaded menu.html") {
		t.Error("view should confirm the reload")
	}
}

func TestModel_ReloadFailureKeepsDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, testutil.Menu)
	m := newTestModel(t, Options{Path: path})
	m = typeText(m, "tart")

	writeDoc(t, dir, "<p>no table here</p>")
	next, _ := m.Update(fileChangedMsg{path: path})
	m = next.(Model)

	if m.errorMsg == "" {
		t.Fatal("reload without a container should report an error")
	}
	if got := len(m.rows()); got != 1 {
		t.Errorf("rows = %d, want the previous document's 1", got)
	}

	m = typeText(m, "x")
	if m.Query() != "tartx" {
		t.Errorf("Query() = %q, want the previous input to keep working", m.Query())
	}
}

func TestNewModel_NoContainer(t *testing.T) {
	path := testutil.SetupTestDocument(t, "<p>nothing</p>")
	_, err := NewModel(Options{Path: path})
	if !errors.Is(err, errors.ErrNoContainer) {
		t.Errorf("NewModel() error = %v, want ErrNoContainer", err)
	}
}

func TestNewModel_MissingFile(t *testing.T) {
	_, err := NewModel(Options{Path: filepath.Join(t.TempDir(), "missing.html")})
	var docErr *errors.DocumentError
	if !errors.As(err, &docErr) {
		t.Errorf("NewModel() error = %v, want *errors.DocumentError", err)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, Options{})

	m, cmd := press(m, tea.KeyEsc)
	if cmd == nil {
		t.Fatal("esc should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModel_Scroll(t *testing.T) {
	m := newTestModel(t, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: chromeHeight + 2})
	m = next.(Model)

	m, _ = press(m, tea.KeyDown)
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}
	m, _ = press(m, tea.KeyDown)
	if m.offset != 1 {
		t.Errorf("offset = %d, want clamped to 1", m.offset)
	}
	m, _ = press(m, tea.KeyPgUp)
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0", m.offset)
	}

	view := ansi.Strip(m.View())
	if strings.Contains(view, "Cherry Tart") {
		t.Error("rows past the list height should not be drawn")
	}
}

func TestModel_TruncatesRows(t *testing.T) {
	m := newTestModel(t, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 14, Height: 40})
	m = next.(Model)

	for _, line := range strings.Split(ansi.Strip(m.View()), "\n") {
		if !strings.Contains(line, "Apple") {
			continue
		}
		if w := ansi.StringWidth(line); w > 14 {
			t.Errorf("row %q is %d cells wide, want at most 14", line, w)
		}
		if !strings.HasSuffix(line, "…") {
			t.Errorf("row %q should end with an ellipsis", line)
		}
	}
}

func TestHighlightMatches(t *testing.T) {
	p := searcher.BuildPattern("an", false)
	got := highlightMatches("Banana", p)
	if ansi.Strip(got) != "Banana" {
		t.Errorf("highlightMatches() text = %q, want the input text", ansi.Strip(got))
	}

	if got := highlightMatches("Cherry", p); got != "Cherry" {
		t.Errorf("highlightMatches() without a match = %q", got)
	}
}

func TestHidden_ClassToggle(t *testing.T) {
	toggle, err := dom.NewToggle(dom.ToggleClass, "")
	if err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, Options{Search: searcher.Options{Toggle: toggle}})
	m = typeText(m, "apple")

	if got := len(m.rows()); got != 1 {
		t.Errorf("rows = %d, want 1", got)
	}
	if !strings.Contains(m.Document().String(), dom.DefaultToggleClass) {
		t.Error("class toggle should mark hidden rows with the default class")
	}
}
