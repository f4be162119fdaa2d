package searcher

// Toggler applies an item's match result, typically by showing or hiding it.
// An error aborts the running pass and is returned to the caller.
type Toggler interface {
	Toggle(item Node, matched bool) error
}

// ToggleFunc adapts a function to the Toggler interface.
type ToggleFunc func(item Node, matched bool) error

// Toggle calls f(item, matched).
func (f ToggleFunc) Toggle(item Node, matched bool) error {
	return f(item, matched)
}

// ShowHide is the default Toggler. It shows matching items and hides the
// rest through their Visibility; items without one are left alone.
var ShowHide Toggler = ToggleFunc(func(item Node, matched bool) error {
	if v, ok := item.(Visibility); ok {
		v.SetVisible(matched)
	}
	return nil
})
