package searcher

import "testing"

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ItemSelector != "tbody > tr" {
		t.Errorf("ItemSelector = %q", cfg.ItemSelector)
	}
	if cfg.TextSelector != "td" {
		t.Errorf("TextSelector = %q", cfg.TextSelector)
	}
	if cfg.CaseSensitive {
		t.Error("CaseSensitive should default to false")
	}
	if cfg.Highlight != "" {
		t.Error("Highlight should default to empty")
	}
	if cfg.Toggle == nil {
		t.Error("Toggle should default to ShowHide")
	}
	if cfg.Input != nil || cfg.InputSelector != "" {
		t.Error("no input should be configured by default")
	}
}

func TestResolve_MergesInOrder(t *testing.T) {
	cfg := Resolve(
		Options{ItemSelector: Ptr("li"), Highlight: Ptr("<b>$1</b>")},
		Options{ItemSelector: Ptr("dd"), CaseSensitive: Ptr(true)},
	)

	if cfg.ItemSelector != "dd" {
		t.Errorf("ItemSelector = %q, want last value", cfg.ItemSelector)
	}
	if cfg.Highlight != "<b>$1</b>" {
		t.Errorf("Highlight = %q, want kept from first options", cfg.Highlight)
	}
	if !cfg.CaseSensitive {
		t.Error("CaseSensitive should be set")
	}
	if cfg.TextSelector != DefaultTextSelector {
		t.Errorf("TextSelector = %q, want default", cfg.TextSelector)
	}
}

func TestConfig_MergeExplicitZeroValues(t *testing.T) {
	cfg := Resolve(Options{CaseSensitive: Ptr(true), Highlight: Ptr("<b>$1</b>")})
	cfg.Merge(Options{CaseSensitive: Ptr(false), TextSelector: Ptr(""), Highlight: Ptr("")})

	if cfg.CaseSensitive {
		t.Error("explicit false should override true")
	}
	if cfg.TextSelector != "" {
		t.Error("explicit empty text selector should override the default")
	}
	if cfg.Highlight != "" {
		t.Error("explicit empty highlight should disable highlighting")
	}
	if cfg.ItemSelector != DefaultItemSelector {
		t.Error("unset fields should be kept")
	}
}

func TestConfig_MergeToggleAndInput(t *testing.T) {
	var called bool
	toggle := ToggleFunc(func(Node, bool) error {
		called = true
		return nil
	})
	in := newFakeInput("q")

	cfg := Defaults()
	cfg.Merge(Options{Toggle: toggle, Input: in})

	if cfg.Input != Input(in) {
		t.Error("Input should be merged")
	}
	if err := cfg.Toggle.Toggle(newFakeNode("tr", ""), true); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("Toggle should be merged")
	}
}

func TestShowHide(t *testing.T) {
	n := newFakeNode("tr", "")
	if err := ShowHide.Toggle(n, false); err != nil {
		t.Fatal(err)
	}
	if n.visible {
		t.Error("ShowHide(false) should hide")
	}
	if err := ShowHide.Toggle(n, true); err != nil {
		t.Fatal(err)
	}
	if !n.visible {
		t.Error("ShowHide(true) should show")
	}

	// Nodes without visibility are ignored.
	if err := ShowHide.Toggle(plainNode{}, false); err != nil {
		t.Errorf("ShowHide on plain node error = %v", err)
	}
}

type plainNode struct{}

func (plainNode) Text() string   { return "" }
func (plainNode) HTML() string   { return "" }
func (plainNode) SetHTML(string) {}
