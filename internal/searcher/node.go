package searcher

// Input events that trigger a search pass.
const (
	EventInput  = "input"
	EventChange = "change"
	EventKeyUp  = "keyup"
)

// Events is the set of input events a Searcher subscribes to.
var Events = []string{EventInput, EventChange, EventKeyUp}

// Node is a handle to an element of the searched document.
//
// Implementations must be comparable and two handles to the same element
// must compare equal: the searcher keys its saved markup by handle.
type Node interface {
	// Text returns the element's plain text content, without markup.
	Text() string
	// HTML returns the element's inner markup.
	HTML() string
	// SetHTML replaces the element's inner markup.
	SetHTML(markup string)
}

// Visibility is implemented by nodes that can be shown or hidden.
// The default toggle action uses it.
type Visibility interface {
	SetVisible(visible bool)
}

// Input is the control whose value is the search term.
type Input interface {
	// Value returns the current value of the control.
	Value() string
	// Subscribe registers handler for the named events and returns a
	// function that removes the subscription. An error returned by handler
	// propagates to whoever dispatched the event.
	Subscribe(events []string, handler func() error) (cancel func())
}

// Document locates elements and input controls.
type Document interface {
	// Find returns the descendants of root matching selector, in document
	// order. A selector that matches nothing, or does not parse, yields nil.
	Find(root Node, selector string) []Node
	// Input returns the first input control matching selector, or nil.
	Input(selector string) Input
}
