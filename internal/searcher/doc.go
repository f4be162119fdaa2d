// Package searcher filters and highlights the items of a list or table as
// the text of an input control changes.
//
// A [Searcher] is attached to one container element. Every time the input
// fires one of [Events], the searcher turns the input's value into a literal,
// case-policy-aware [Pattern] and, unless the pattern is unchanged since the
// previous pass, visits every item under the container:
//
//   - each text-bearing element of the item is tested against the pattern,
//   - matching elements get their text re-rendered with the highlight
//     template wrapped around each match (their original markup is kept),
//   - elements that stop matching get their original markup back,
//   - the item is shown or hidden through the configured [Toggler].
//
// The document itself is an external collaborator reached through the
// [Document], [Node] and [Input] interfaces; package dom provides an
// implementation over golang.org/x/net/html.
//
// # Usage
//
//	doc, _ := dom.Parse(r)
//	reg := searcher.NewRegistry(doc, logger)
//	for _, table := range doc.Query("table.menu") {
//	    reg.Attach(table, searcher.Options{
//	        InputSelector: searcher.Ptr("#search"),
//	        Highlight:     searcher.Ptr(`<mark>$1</mark>`),
//	    })
//	}
//
// # Concurrency
//
// A Searcher is not safe for concurrent use. Passes are expected to be
// serialized by the host's event loop, and nothing else may mutate the
// container's subtree during a pass.
package searcher
