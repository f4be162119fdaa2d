package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstElement(t *testing.T, markup, selector string) Element {
	t.Helper()
	els := mustParse(t, markup).QueryElements(selector)
	require.NotEmpty(t, els, "no element matches %q", selector)
	return els[0]
}

func TestElement_TextAndHTML(t *testing.T) {
	el := firstElement(t, `<table><tr><td><b>Apple</b> Pie &amp; Cream</td></tr></table>`, "td")

	assert.Equal(t, "td", el.Tag())
	assert.Equal(t, "Apple Pie & Cream", el.Text())
	assert.Equal(t, "<b>Apple</b> Pie &amp; Cream", el.HTML())
}

func TestElement_SetHTML(t *testing.T) {
	el := firstElement(t, `<table><tr><td>Apple Pie</td></tr></table>`, "td")

	el.SetHTML("Apple <mark>Pie</mark>")
	assert.Equal(t, "Apple <mark>Pie</mark>", el.HTML())
	assert.Equal(t, "Apple Pie", el.Text())

	el.SetHTML("Apple Pie")
	assert.Equal(t, "Apple Pie", el.HTML())
}

func TestElement_SetText(t *testing.T) {
	el := firstElement(t, `<p>old <b>text</b></p>`, "p")

	el.SetText("a < b")
	assert.Equal(t, "a < b", el.Text())
	assert.Equal(t, "a &lt; b", el.HTML())

	el.SetText("")
	assert.Empty(t, el.HTML())
}

func TestElement_Attributes(t *testing.T) {
	el := firstElement(t, `<p id="x" class="a b">t</p>`, "p")

	v, ok := el.Attr("id")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	el.SetAttr("id", "y")
	v, _ = el.Attr("id")
	assert.Equal(t, "y", v)

	el.SetAttr("title", "hello")
	v, ok = el.Attr("title")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	el.RemoveAttr("title")
	_, ok = el.Attr("title")
	assert.False(t, ok)
}

func TestElement_Classes(t *testing.T) {
	el := firstElement(t, `<p class="a b">t</p>`, "p")

	assert.True(t, el.HasClass("a"))
	assert.False(t, el.HasClass("c"))

	el.SetClass("c", true)
	assert.True(t, el.HasClass("c"))
	el.SetClass("c", true)
	v, _ := el.Attr("class")
	assert.Equal(t, "a b c", v)

	el.SetClass("a", false)
	el.SetClass("b", false)
	el.SetClass("c", false)
	_, ok := el.Attr("class")
	assert.False(t, ok, "empty class list should remove the attribute")
}

func TestElement_SetVisible(t *testing.T) {
	el := firstElement(t, `<table><tbody><tr><td>a</td></tr></tbody></table>`, "tr")

	assert.True(t, el.Visible())

	el.SetVisible(false)
	assert.False(t, el.Visible())
	style, _ := el.Attr("style")
	assert.Equal(t, "display: none", style)

	el.SetVisible(false)
	style, _ = el.Attr("style")
	assert.Equal(t, "display: none", style, "hiding twice should not change the style")

	el.SetVisible(true)
	assert.True(t, el.Visible())
	_, ok := el.Attr("style")
	assert.False(t, ok)
}

func TestElement_SetVisibleRestoresDisplay(t *testing.T) {
	el := firstElement(t, `<ul><li style="color: red; display: flex">a</li></ul>`, "li")

	el.SetVisible(false)
	style, _ := el.Attr("style")
	assert.Equal(t, "color: red; display: none", style)
	saved, ok := el.Attr(savedDisplayAttr)
	assert.True(t, ok)
	assert.Equal(t, "flex", saved)

	el.SetVisible(true)
	style, _ = el.Attr("style")
	assert.Equal(t, "color: red; display: flex", style)
	_, ok = el.Attr(savedDisplayAttr)
	assert.False(t, ok)
}

func TestElement_VisibleIgnoresCase(t *testing.T) {
	el := firstElement(t, `<ul><li style="DISPLAY:None">a</li></ul>`, "li")
	assert.False(t, el.Visible())
}

func TestElement_String(t *testing.T) {
	el := firstElement(t, `<table id="fruits" class="list wide"></table>`, "table")
	assert.Equal(t, "table#fruits.list.wide", el.String())

	doc := mustParse(t, `<p>x</p>`)
	assert.Equal(t, "#document", doc.Root().String())
	assert.Equal(t, "<nil>", Element{}.String())
}

func TestElement_Nil(t *testing.T) {
	var el Element
	assert.Empty(t, el.Tag())
	assert.Empty(t, el.Text())
	assert.Empty(t, el.HTML())
	el.SetHTML("x")
	el.SetAttr("a", "b")
	_, ok := el.Attr("a")
	assert.False(t, ok)
}
