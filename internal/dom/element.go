package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// savedDisplayAttr keeps an item's own display value while it is hidden.
const savedDisplayAttr = "data-searcher-display"

// Element is a handle to an element node. Handles to the same node compare
// equal, so Element can key maps. It implements searcher.Node and
// searcher.Visibility.
type Element struct {
	n *html.Node
}

// Wrap returns the handle for n.
func Wrap(n *html.Node) Element {
	return Element{n: n}
}

// Node returns the wrapped node.
func (e Element) Node() *html.Node {
	return e.n
}

// Tag returns the element's tag name.
func (e Element) Tag() string {
	if e.n == nil {
		return ""
	}
	return e.n.Data
}

// Text returns the concatenated text of the element's subtree.
func (e Element) Text() string {
	if e.n == nil {
		return ""
	}
	var b strings.Builder
	collectText(&b, e.n)
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

// HTML returns the rendered markup of the element's children.
func (e Element) HTML() string {
	if e.n == nil {
		return ""
	}
	var b strings.Builder
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// SetHTML replaces the element's children with markup parsed in the
// element's context.
func (e Element) SetHTML(markup string) {
	if e.n == nil {
		return
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), e.n)
	if err != nil {
		nodes = []*html.Node{{Type: html.TextNode, Data: markup}}
	}

	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	for _, c := range nodes {
		e.n.AppendChild(c)
	}
}

// SetText replaces the element's children with a single text node.
func (e Element) SetText(text string) {
	if e.n == nil {
		return
	}
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Attr returns the value of the attribute key.
func (e Element) Attr(key string) (string, bool) {
	if e.n == nil {
		return "", false
	}
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the attribute key to val.
func (e Element) SetAttr(key, val string) {
	if e.n == nil {
		return
	}
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			e.n.Attr[i].Val = val
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes the attribute key.
func (e Element) RemoveAttr(key string) {
	if e.n == nil {
		return
	}
	attrs := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	e.n.Attr = attrs
}

// HasClass reports whether the element's class list contains class.
func (e Element) HasClass(class string) bool {
	v, _ := e.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// SetClass adds class to, or removes it from, the element's class list.
func (e Element) SetClass(class string, on bool) {
	v, _ := e.Attr("class")
	var classes []string
	for _, c := range strings.Fields(v) {
		if c != class {
			classes = append(classes, c)
		}
	}
	if on {
		classes = append(classes, class)
	}

	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

// Visible reports whether the element's inline style does not hide it.
func (e Element) Visible() bool {
	style, _ := e.Attr("style")
	for _, decl := range splitStyle(style) {
		prop, val, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(prop), "display") &&
			strings.EqualFold(strings.TrimSpace(val), "none") {
			return false
		}
	}
	return true
}

// SetVisible shows or hides the element through its inline display style.
// Hiding remembers an explicit display value and showing restores it.
func (e Element) SetVisible(visible bool) {
	if e.n == nil || visible == e.Visible() {
		return
	}

	style, _ := e.Attr("style")
	var (
		decls   []string
		display string
	)
	for _, decl := range splitStyle(style) {
		prop, val, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(prop), "display") {
			display = strings.TrimSpace(val)
			continue
		}
		decls = append(decls, decl)
	}

	if visible {
		if saved, ok := e.Attr(savedDisplayAttr); ok {
			decls = append(decls, "display: "+saved)
			e.RemoveAttr(savedDisplayAttr)
		}
	} else {
		if display != "" {
			e.SetAttr(savedDisplayAttr, display)
		}
		decls = append(decls, "display: none")
	}

	if len(decls) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", strings.Join(decls, "; "))
}

func splitStyle(style string) []string {
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		if decl = strings.TrimSpace(decl); decl != "" {
			decls = append(decls, decl)
		}
	}
	return decls
}

// String describes the element as tag#id.class, for logs and errors.
func (e Element) String() string {
	if e.n == nil {
		return "<nil>"
	}
	if e.n.Type == html.DocumentNode {
		return "#document"
	}

	var b strings.Builder
	b.WriteString(e.n.Data)
	if id, ok := e.Attr("id"); ok && id != "" {
		b.WriteString("#" + id)
	}
	if class, ok := e.Attr("class"); ok {
		for _, c := range strings.Fields(class) {
			b.WriteString("." + c)
		}
	}
	return b.String()
}
