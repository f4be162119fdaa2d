package dom

import (
	"fmt"

	"github.com/Iron-Ham/searcher/internal/errors"
	"github.com/Iron-Ham/searcher/internal/searcher"
)

// Toggle modes understood by NewToggle.
const (
	ToggleDisplay = "display"
	ToggleHidden  = "hidden"
	ToggleClass   = "class"
)

// DefaultToggleClass is the class added to non-matching items in class mode.
const DefaultToggleClass = "searcher-hidden"

// ToggleModes returns the valid toggle modes.
func ToggleModes() []string {
	return []string{ToggleDisplay, ToggleHidden, ToggleClass}
}

// HiddenAttr toggles the boolean hidden attribute of non-matching items.
var HiddenAttr searcher.Toggler = searcher.ToggleFunc(func(item searcher.Node, matched bool) error {
	el, ok := item.(Element)
	if !ok {
		return fmt.Errorf("hidden toggle: unsupported node %T", item)
	}
	if matched {
		el.RemoveAttr("hidden")
	} else {
		el.SetAttr("hidden", "")
	}
	return nil
})

// ClassToggle returns a Toggler that adds class to non-matching items and
// removes it from matching ones.
func ClassToggle(class string) searcher.Toggler {
	return searcher.ToggleFunc(func(item searcher.Node, matched bool) error {
		el, ok := item.(Element)
		if !ok {
			return fmt.Errorf("class toggle: unsupported node %T", item)
		}
		el.SetClass(class, !matched)
		return nil
	})
}

// NewToggle returns the Toggler for mode. class is only used in class mode
// and defaults to DefaultToggleClass.
func NewToggle(mode, class string) (searcher.Toggler, error) {
	switch mode {
	case "", ToggleDisplay:
		return searcher.ShowHide, nil
	case ToggleHidden:
		return HiddenAttr, nil
	case ToggleClass:
		if class == "" {
			class = DefaultToggleClass
		}
		return ClassToggle(class), nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidToggle, "mode %q", mode)
	}
}

// Hidden reports whether el is hidden by any of the toggle modes.
func Hidden(el Element, class string) bool {
	if !el.Visible() {
		return true
	}
	if _, ok := el.Attr("hidden"); ok {
		return true
	}
	if class == "" {
		class = DefaultToggleClass
	}
	return el.HasClass(class)
}
