package searcher

import (
	"regexp"
	"slices"

	"golang.org/x/net/html"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// fakeNode is an element whose text is its markup without tags.
type fakeNode struct {
	name    string
	markup  string
	visible bool
	sets    int
}

func newFakeNode(name, markup string) *fakeNode {
	return &fakeNode{name: name, markup: markup, visible: true}
}

func (n *fakeNode) Text() string {
	return html.UnescapeString(tagPattern.ReplaceAllString(n.markup, ""))
}

func (n *fakeNode) HTML() string { return n.markup }

func (n *fakeNode) SetHTML(markup string) {
	n.markup = markup
	n.sets++
}

func (n *fakeNode) SetVisible(v bool) { n.visible = v }

func (n *fakeNode) String() string { return n.name }

// fakeDoc returns fixed children per parent node, ignoring selectors other
// than the empty one.
type fakeDoc struct {
	children map[Node][]Node
	inputs   map[string]Input
	finds    int
}

func newFakeDoc() *fakeDoc {
	return &fakeDoc{
		children: make(map[Node][]Node),
		inputs:   make(map[string]Input),
	}
}

func (d *fakeDoc) add(parent Node, children ...Node) {
	d.children[parent] = append(d.children[parent], children...)
}

func (d *fakeDoc) remove(parent, child Node) {
	d.children[parent] = slices.DeleteFunc(d.children[parent], func(n Node) bool { return n == child })
}

func (d *fakeDoc) Find(root Node, selector string) []Node {
	d.finds++
	if selector == "" {
		return nil
	}
	return d.children[root]
}

func (d *fakeDoc) Input(selector string) Input {
	return d.inputs[selector]
}

// fakeInput records subscriptions and fires them on demand.
type fakeInput struct {
	value string
	subs  map[int]func() error
	next  int
}

func newFakeInput(value string) *fakeInput {
	return &fakeInput{value: value, subs: make(map[int]func() error)}
}

func (in *fakeInput) Value() string { return in.value }

func (in *fakeInput) Subscribe(events []string, handler func() error) func() {
	in.next++
	id := in.next
	in.subs[id] = handler
	return func() { delete(in.subs, id) }
}

func (in *fakeInput) set(v string) error {
	in.value = v
	for _, fn := range in.subs {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// fixture is the two-row table used throughout the tests.
type fixture struct {
	doc       *fakeDoc
	container *fakeNode
	rows      []*fakeNode
	cells     []*fakeNode
}

func newFixture(texts ...string) *fixture {
	f := &fixture{doc: newFakeDoc(), container: newFakeNode("table", "")}
	for _, text := range texts {
		row := newFakeNode("tr", "")
		cell := newFakeNode("td", text)
		f.doc.add(f.container, row)
		f.doc.add(row, cell)
		f.rows = append(f.rows, row)
		f.cells = append(f.cells, cell)
	}
	return f
}
