package dom

import (
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Iron-Ham/searcher/internal/errors"
)

type subscription struct {
	id     int
	events []string
	fn     func() error
}

// Input is an input control of a Document. It implements searcher.Input and
// dispatches events synchronously to its subscribers.
type Input struct {
	el     Element
	subs   []subscription
	nextID int
}

func newInput(el Element) *Input {
	return &Input{el: el}
}

// NewStandaloneInput returns an Input backed by an input element that
// belongs to no document, for frontends that own the search box.
func NewStandaloneInput() *Input {
	return newInput(Element{n: &html.Node{Type: html.ElementNode, DataAtom: atom.Input, Data: "input"}})
}

// Element returns the element backing the input.
func (in *Input) Element() Element {
	return in.el
}

// Value returns the control's value: the value attribute, or the text of a
// textarea.
func (in *Input) Value() string {
	if in.el.Tag() == "textarea" {
		return in.el.Text()
	}
	v, _ := in.el.Attr("value")
	return v
}

// SetValue sets the control's value without dispatching any event.
func (in *Input) SetValue(v string) {
	if in.el.Tag() == "textarea" {
		in.el.SetText(v)
		return
	}
	in.el.SetAttr("value", v)
}

// Type appends text to the value the way typing would, dispatching "input"
// and then "keyup".
func (in *Input) Type(text string) error {
	in.SetValue(in.Value() + text)
	return errors.Join(in.Dispatch("input"), in.Dispatch("keyup"))
}

// Edit replaces the value the way an edit in place would, dispatching
// "input" and then "keyup". Nothing is dispatched if the value is unchanged.
func (in *Input) Edit(v string) error {
	if v == in.Value() {
		return nil
	}
	in.SetValue(v)
	return errors.Join(in.Dispatch("input"), in.Dispatch("keyup"))
}

// Change sets the value and dispatches "change".
func (in *Input) Change(v string) error {
	in.SetValue(v)
	return in.Dispatch("change")
}

// Subscribe implements searcher.Input.
func (in *Input) Subscribe(events []string, handler func() error) func() {
	in.nextID++
	id := in.nextID
	in.subs = append(in.subs, subscription{id: id, events: slices.Clone(events), fn: handler})

	return func() {
		in.subs = slices.DeleteFunc(in.subs, func(s subscription) bool { return s.id == id })
	}
}

// Subscribers returns the number of active subscriptions.
func (in *Input) Subscribers() int {
	return len(in.subs)
}

// Dispatch calls every handler subscribed to event, in subscription order.
// All handlers run; their errors are joined.
func (in *Input) Dispatch(event string) error {
	var errs []error
	for _, s := range slices.Clone(in.subs) {
		if !slices.Contains(s.events, event) {
			continue
		}
		if err := s.fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
