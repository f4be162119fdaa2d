// Package testutil provides testing utilities for searcher tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Menu is a document with a search input and one table of three items.
const Menu = `<html><body>
<input id="q">
<table>
  <tbody>
    <tr><td>Apple Pie</td><td>4.50</td></tr>
    <tr><td>Banana Bread</td><td>3.00</td></tr>
    <tr><td>Cherry Tart</td><td>5.25</td></tr>
  </tbody>
</table>
</body></html>`

// MenuRow returns a table row for Menu-style documents.
func MenuRow(name, price string) string {
	return "<tr><td>" + name + "</td><td>" + price + "</td></tr>"
}

// WithRows returns Menu with extra rows appended to its table body.
func WithRows(rows ...string) string {
	return strings.Replace(Menu, "  </tbody>", "    "+strings.Join(rows, "\n    ")+"\n  </tbody>", 1)
}

// WriteFile writes content to name inside dir, creating parent directories.
// Returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", name, err)
	}
	return path
}

// SetupTestDocument writes content as menu.html in a temporary directory
// and returns its path. The directory is removed when the test completes.
func SetupTestDocument(t *testing.T, content string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "menu.html", content)
}

// SetupTestDir creates a temporary directory with the given files. The
// files map contains relative paths to file contents.
func SetupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	return dir
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// IsolateConfig points the searcher config directory at a temporary
// directory for the rest of the test and returns it.
func IsolateConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}
