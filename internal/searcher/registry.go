package searcher

import "github.com/Iron-Ham/searcher/internal/logging"

// Registry keeps at most one Searcher per container of a Document.
type Registry struct {
	doc       Document
	logger    *logging.Logger
	searchers map[Node]*Searcher
}

// NewRegistry creates an empty Registry for doc.
func NewRegistry(doc Document, logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Registry{
		doc:       doc,
		logger:    logger,
		searchers: make(map[Node]*Searcher),
	}
}

// Attach returns the Searcher for container. The first call creates it from
// opts; later calls merge opts into the existing Searcher's Config.
func (r *Registry) Attach(container Node, opts ...Options) *Searcher {
	if s, ok := r.searchers[container]; ok {
		s.Configure(opts...)
		return s
	}

	s := New(r.doc, container, r.logger, opts...)
	r.searchers[container] = s
	return s
}

// AttachAll calls Attach for every container, in order.
func (r *Registry) AttachAll(containers []Node, opts ...Options) []*Searcher {
	out := make([]*Searcher, 0, len(containers))
	for _, c := range containers {
		out = append(out, r.Attach(c, opts...))
	}
	return out
}

// Lookup returns the Searcher attached to container, if any.
func (r *Registry) Lookup(container Node) (*Searcher, bool) {
	s, ok := r.searchers[container]
	return s, ok
}

// Detach removes the Searcher attached to container and restores the
// markup it changed. It reports whether one was attached.
func (r *Registry) Detach(container Node) bool {
	s, ok := r.searchers[container]
	if !ok {
		return false
	}
	s.Detach()
	delete(r.searchers, container)
	return true
}

// Len returns the number of attached Searchers.
func (r *Registry) Len() int {
	return len(r.searchers)
}
