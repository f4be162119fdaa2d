package searcher

import (
	"fmt"

	"github.com/Iron-Ham/searcher/internal/errors"
	"github.com/Iron-Ham/searcher/internal/logging"
)

// PassStats summarizes the most recent search pass.
type PassStats struct {
	Signature   string
	Items       int
	Matched     int
	Highlighted int
}

// Searcher is the attachment of a Config and its search state to one
// container element.
type Searcher struct {
	doc       Document
	container Node
	cfg       Config
	logger    *logging.Logger

	input       Input
	unsubscribe func()

	// lastSignature is the signature of the last applied pattern.
	lastSignature string
	// originals holds the pre-highlight markup of every element that
	// currently shows highlight markup, and nothing else.
	originals map[Node]string
	stats     PassStats
}

// New attaches a Searcher to container. Most callers go through
// Registry.Attach, which keeps one Searcher per container.
func New(doc Document, container Node, logger *logging.Logger, opts ...Options) *Searcher {
	if logger == nil {
		logger = logging.NopLogger()
	}

	s := &Searcher{
		doc:       doc,
		container: container,
		cfg:       Resolve(opts...),
		logger:    logger.WithContainer(describe(container)),
		originals: make(map[Node]string),
	}
	s.bind()
	return s
}

// Configure merges opts into the Searcher's Config. Fields not set in opts
// keep their current values. If the effective input changes, the change
// subscription moves to the new input.
func (s *Searcher) Configure(opts ...Options) {
	for _, o := range opts {
		s.cfg.Merge(o)
	}
	s.bind()
}

// Config returns a copy of the current Config.
func (s *Searcher) Config() Config {
	return s.cfg
}

// Container returns the element the Searcher is attached to.
func (s *Searcher) Container() Node {
	return s.container
}

// Input returns the input control the Searcher listens to, or nil.
func (s *Searcher) Input() Input {
	return s.input
}

// Stats returns a summary of the last pass that was not skipped.
func (s *Searcher) Stats() PassStats {
	return s.stats
}

// Highlighted reports whether el currently shows highlight markup.
func (s *Searcher) Highlighted(el Node) bool {
	_, ok := s.originals[el]
	return ok
}

func (s *Searcher) bind() {
	input := s.cfg.Input
	if input == nil && s.cfg.InputSelector != "" && s.doc != nil {
		input = s.doc.Input(s.cfg.InputSelector)
	}
	if input == s.input {
		return
	}

	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.input = input
	if input == nil {
		s.logger.Debug("no input located", "input_selector", s.cfg.InputSelector)
		return
	}
	s.unsubscribe = input.Subscribe(Events, s.OnChange)
}

// OnChange runs a search pass with the input's current value. It is the
// handler subscribed to the input's events. Without an input it does
// nothing.
func (s *Searcher) OnChange() error {
	if s.input == nil {
		return nil
	}
	return s.Search(s.input.Value())
}

// Search runs a search pass for term. The pass is skipped when the pattern
// built from term and the case policy equals the previous pass's pattern.
//
// An error from the toggle action stops the pass and is returned as an
// *errors.ToggleError.
func (s *Searcher) Search(term string) error {
	p := BuildPattern(term, s.cfg.CaseSensitive)
	sig := p.Signature()
	if sig == s.lastSignature {
		s.logger.Debug("search pass skipped", "signature", sig)
		return nil
	}
	s.lastSignature = sig

	return s.run(p)
}

func (s *Searcher) run(p *Pattern) error {
	if s.doc == nil || s.container == nil {
		return nil
	}

	highlight := s.cfg.Highlight != "" && !p.Empty()
	var tmpl Template
	if highlight {
		tmpl = ParseTemplate(s.cfg.Highlight)
	}
	toggle := s.cfg.Toggle
	if toggle == nil {
		toggle = ShowHide
	}

	stats := PassStats{Signature: p.Signature()}
	seen := make(map[Node]struct{}, len(s.originals))

	for i, item := range s.Items() {
		matched := false
		for _, el := range s.Texts(item) {
			seen[el] = struct{}{}
			if s.reconcile(el, p, tmpl, highlight) {
				matched = true
			}
		}

		stats.Items++
		if matched {
			stats.Matched++
		}
		if err := toggle.Toggle(item, matched); err != nil {
			return errors.NewToggleError(i, err).WithContainer(describe(s.container))
		}
	}

	s.forget(seen)
	stats.Highlighted = len(s.originals)
	s.stats = stats

	s.logger.Debug("search pass",
		"signature", stats.Signature,
		"items", stats.Items,
		"matched", stats.Matched,
		"highlighted", stats.Highlighted,
	)
	return nil
}

// Items returns the items of the container, in document order.
func (s *Searcher) Items() []Node {
	if s.doc == nil || s.container == nil {
		return nil
	}
	return s.doc.Find(s.container, s.cfg.ItemSelector)
}

// Texts returns the text-bearing elements of item. Without a text selector
// the item is its own only text element.
func (s *Searcher) Texts(item Node) []Node {
	if s.cfg.TextSelector == "" || s.doc == nil {
		return []Node{item}
	}
	return s.doc.Find(item, s.cfg.TextSelector)
}

// reconcile tests el against p and brings its markup in line with the
// result. The test reads the element's currently displayed text.
func (s *Searcher) reconcile(el Node, p *Pattern, tmpl Template, highlight bool) bool {
	text := el.Text()
	matched := p.MatchString(text)

	original, saved := s.originals[el]
	switch {
	case matched && highlight:
		if !saved {
			s.originals[el] = el.HTML()
		}
		el.SetHTML(p.render(text, tmpl))
	case saved:
		el.SetHTML(original)
		delete(s.originals, el)
	}
	return matched
}

// forget restores and drops saved markup for elements that were not
// visited by the last pass, so removed elements are not retained.
func (s *Searcher) forget(seen map[Node]struct{}) {
	for el, original := range s.originals {
		if _, ok := seen[el]; ok {
			continue
		}
		el.SetHTML(original)
		delete(s.originals, el)
	}
}

// Detach stops listening to the input and restores the original markup of
// every highlighted element. Item visibility is left as is.
func (s *Searcher) Detach() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.input = nil
	s.forget(nil)
}

func describe(n Node) string {
	if n == nil {
		return ""
	}
	if str, ok := n.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", n)
}
