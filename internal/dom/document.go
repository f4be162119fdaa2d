// Package dom implements the searcher's document collaborators over an HTML
// tree parsed with golang.org/x/net/html. Selectors are CSS selectors
// compiled with cascadia.
//
// Unlike the rest of the module, the tests of this package assert with
// testify's assert and require.
package dom

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/Iron-Ham/searcher/internal/errors"
	"github.com/Iron-Ham/searcher/internal/logging"
	"github.com/Iron-Ham/searcher/internal/searcher"
)

// Document is a parsed HTML document. It implements searcher.Document.
// Like the tree it wraps, it is not safe for concurrent use.
type Document struct {
	root      *html.Node
	inputs    map[*html.Node]*Input
	selectors map[string]cascadia.Selector
	logger    *logging.Logger
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.NewDocumentError("failed to parse document", errors.Join(errors.ErrDocumentParse, err))
	}
	return &Document{
		root:      root,
		inputs:    make(map[*html.Node]*Input),
		selectors: make(map[string]cascadia.Selector),
		logger:    logging.NopLogger(),
	}, nil
}

// ParseString parses an HTML document held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Load parses the HTML file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDocumentError("failed to open document", err).WithPath(path)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		var docErr *errors.DocumentError
		if errors.As(err, &docErr) {
			return nil, docErr.WithPath(path)
		}
		return nil, err
	}
	return doc, nil
}

// SetLogger sets the logger used to report selector problems.
func (d *Document) SetLogger(logger *logging.Logger) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	d.logger = logger
}

// Root returns the document node.
func (d *Document) Root() Element {
	return Element{n: d.root}
}

// Query returns the elements of the whole document matching selector.
func (d *Document) Query(selector string) []searcher.Node {
	return d.Find(d.Root(), selector)
}

// QueryElements is Query with concrete Element results.
func (d *Document) QueryElements(selector string) []Element {
	return d.match(d.root, selector)
}

// Find implements searcher.Document. Only descendants of root are returned;
// root itself never matches.
func (d *Document) Find(root searcher.Node, selector string) []searcher.Node {
	el, ok := root.(Element)
	if !ok || el.n == nil {
		return nil
	}

	matches := d.match(el.n, selector)
	if len(matches) == 0 {
		return nil
	}
	nodes := make([]searcher.Node, len(matches))
	for i, m := range matches {
		nodes[i] = m
	}
	return nodes
}

// Input implements searcher.Document. It returns the first element matching
// selector wrapped as an Input, or nil. The same element always yields the
// same *Input, so subscriptions survive repeated lookups.
func (d *Document) Input(selector string) searcher.Input {
	in := d.InputElement(selector)
	if in == nil {
		return nil
	}
	return in
}

// InputElement is Input with a concrete result.
func (d *Document) InputElement(selector string) *Input {
	sel := d.compile(selector)
	if sel == nil {
		return nil
	}
	n := sel.MatchFirst(d.root)
	if n == nil {
		return nil
	}
	if in, ok := d.inputs[n]; ok {
		return in
	}
	in := newInput(Element{n: n})
	d.inputs[n] = in
	return in
}

func (d *Document) match(root *html.Node, selector string) []Element {
	sel := d.compile(selector)
	if sel == nil {
		return nil
	}

	var out []Element
	for _, n := range sel.MatchAll(root) {
		if n == root {
			continue
		}
		out = append(out, Element{n: n})
	}
	return out
}

// compile returns the cached selector, or nil if it does not compile.
func (d *Document) compile(selector string) cascadia.Selector {
	if selector == "" {
		return nil
	}
	if sel, ok := d.selectors[selector]; ok {
		return sel
	}

	sel, err := cascadia.Compile(selector)
	if err != nil {
		d.logger.Warn("invalid selector", "selector", selector, "error", err.Error())
		sel = nil
	}
	d.selectors[selector] = sel
	return sel
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return errors.NewDocumentError("failed to render document", errors.Join(errors.ErrDocumentRender, err))
	}
	return nil
}

// String renders the document to a string. If rendering fails the error
// is logged and the markup written up to the failure is returned.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		d.logger.Error("render failed", "error", err.Error())
	}
	return buf.String()
}

// CompileSelector reports whether selector is a valid CSS selector.
func CompileSelector(selector string) error {
	if _, err := cascadia.Compile(selector); err != nil {
		return errors.Join(errors.ErrInvalidSelector, err)
	}
	return nil
}
