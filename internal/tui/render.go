package tui

import (
	"strings"

	"github.com/Iron-Ham/searcher/internal/dom"
	"github.com/Iron-Ham/searcher/internal/searcher"
	"github.com/Iron-Ham/searcher/internal/tui/styles"
	"github.com/Iron-Ham/searcher/internal/util"
)

// cellSeparator joins the text elements of one item.
const cellSeparator = " │ "

// itemRow is one item of the document as listed by the browser.
type itemRow struct {
	line   string
	hidden bool
}

// items renders every item of every attached container, in document order.
func (m Model) items() []itemRow {
	var rows []itemRow
	for _, s := range m.searchers {
		p := searcher.BuildPattern(m.Query(), s.Config().CaseSensitive)

		for _, item := range s.Items() {
			el, ok := item.(dom.Element)
			if !ok {
				continue
			}
			hidden := dom.Hidden(el, m.opts.ToggleClass)

			texts := s.Texts(item)
			cells := make([]string, 0, len(texts))
			for _, t := range texts {
				tel, ok := t.(dom.Element)
				if !ok {
					continue
				}
				text := util.CollapseSpace(tel.Text())
				if !hidden && s.Highlighted(t) {
					text = highlightMatches(text, p)
				}
				cells = append(cells, text)
			}

			line := "  " + strings.Join(cells, cellSeparator)
			if hidden {
				line = styles.HiddenItem.Render(line)
			}
			rows = append(rows, itemRow{line: line, hidden: hidden})
		}
	}
	return rows
}

// rows returns the lines to list, omitting hidden items unless they are
// being shown.
func (m Model) rows() []string {
	var lines []string
	for _, r := range m.items() {
		if r.hidden && !m.showHidden {
			continue
		}
		lines = append(lines, r.line)
	}
	return lines
}

// counts returns the number of visible items and the number of items.
func (m Model) counts() (matched, total int) {
	for _, r := range m.items() {
		total++
		if !r.hidden {
			matched++
		}
	}
	return matched, total
}

// highlightMatches styles every non-empty match of p in text.
func highlightMatches(text string, p *searcher.Pattern) string {
	locs := p.Regexp().FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(styles.SearchMatch.Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
