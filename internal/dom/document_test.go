package dom

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/Iron-Ham/searcher/internal/errors"
	"github.com/Iron-Ham/searcher/internal/logging"
)

const fruitTable = `<!DOCTYPE html>
<html><body>
<input id="q" value="">
<table id="fruits">
  <thead><tr><th>Name</th></tr></thead>
  <tbody>
    <tr><td>Apple Pie</td></tr>
    <tr><td>Banana Bread</td></tr>
  </tbody>
</table>
</body></html>`

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ParseString(s)
	require.NoError(t, err)
	return doc
}

func TestDocument_Query(t *testing.T) {
	doc := mustParse(t, fruitTable)

	rows := doc.QueryElements("tbody > tr")
	require.Len(t, rows, 2)
	assert.Equal(t, "Apple Pie", rows[0].Text())
	assert.Equal(t, "Banana Bread", rows[1].Text())

	assert.Len(t, doc.Query("td"), 2)
	assert.Empty(t, doc.Query("li"))
}

func TestDocument_FindExcludesRoot(t *testing.T) {
	doc := mustParse(t, `<div class="box"><div class="box"><span>a</span></div></div>`)

	boxes := doc.QueryElements("div.box")
	require.Len(t, boxes, 2)

	inner := doc.Find(boxes[0], "div.box")
	require.Len(t, inner, 1)
	assert.Equal(t, boxes[1], inner[0])
	assert.Empty(t, doc.Find(boxes[1], "div.box"))
}

func TestDocument_FindReturnsSameHandles(t *testing.T) {
	doc := mustParse(t, fruitTable)
	table := doc.QueryElements("#fruits")[0]

	first := doc.Find(table, "td")
	second := doc.Find(table, "td")
	require.Len(t, first, 2)
	assert.Equal(t, first, second)

	seen := map[any]bool{first[0]: true}
	assert.True(t, seen[second[0]], "handles to the same element should be equal map keys")
}

func TestDocument_FindForeignNode(t *testing.T) {
	doc := mustParse(t, fruitTable)
	assert.Nil(t, doc.Find(nil, "td"))
	assert.Nil(t, doc.Find(Element{}, "td"))
}

func TestDocument_InvalidSelector(t *testing.T) {
	var buf bytes.Buffer
	doc := mustParse(t, fruitTable)
	doc.SetLogger(logging.NewLoggerWithWriter(&buf, logging.LevelDebug, nil))

	assert.Empty(t, doc.Query("tr["))
	assert.Empty(t, doc.Query("tr["))
	assert.Equal(t, 1, strings.Count(buf.String(), "invalid selector"), "invalid selectors should be reported once")

	sel, cached := doc.selectors["tr["]
	assert.True(t, cached)
	assert.Nil(t, sel)
}

func TestDocument_EmptySelector(t *testing.T) {
	doc := mustParse(t, fruitTable)
	assert.Empty(t, doc.Query(""))
	assert.Nil(t, doc.Input(""))
}

func TestDocument_Input(t *testing.T) {
	doc := mustParse(t, fruitTable)

	in := doc.InputElement("#q")
	require.NotNil(t, in)
	assert.Same(t, in, doc.InputElement("#q"))
	assert.Equal(t, "input", in.Element().Tag())

	assert.Nil(t, doc.Input("#missing"))
	assert.NotNil(t, doc.Input("input"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fruits.html")
	require.NoError(t, os.WriteFile(path, []byte(fruitTable), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Query("tbody > tr"), 2)
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.html")

	_, err := Load(path)
	require.Error(t, err)

	var docErr *errors.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, path, docErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocument_Render(t *testing.T) {
	doc := mustParse(t, `<p>a &amp; b</p>`)

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	assert.Contains(t, buf.String(), "<p>a &amp; b</p>")
	assert.Equal(t, buf.String(), doc.String())
}

func TestDocument_StringLogsRenderError(t *testing.T) {
	doc := mustParse(t, `<p>a &amp; b</p>`)
	doc.root.AppendChild(&html.Node{Type: html.ErrorNode})

	var logBuf bytes.Buffer
	doc.SetLogger(logging.NewLoggerWithWriter(&logBuf, logging.LevelDebug, nil))

	var buf bytes.Buffer
	err := doc.Render(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDocumentRender)

	out := doc.String()
	assert.Contains(t, out, "<p>a &amp; b</p>")
	assert.Contains(t, logBuf.String(), `"msg":"render failed"`)
}

func TestCompileSelector(t *testing.T) {
	assert.NoError(t, CompileSelector("tbody > tr"))
	assert.NoError(t, CompileSelector("td:nth-child(2)"))

	err := CompileSelector("tr[")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidSelector)
}
