package searcher

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	refLiteral = -1
	refBefore  = -2
	refAfter   = -3
)

type templatePart struct {
	literal string
	ref     int
}

// Template is a parsed highlight template.
//
// Literal parts are written as markup. References are replaced with text
// from the match, escaped as HTML:
//
//	$1 .. $9  the capture group (only $1 exists in a Pattern)
//	$&        the whole match
//	$`        the text before the match
//	$'        the text after the match
//	$$        a literal dollar sign
//
// A reference to a group the pattern does not have is kept literally.
type Template []templatePart

// ParseTemplate parses a highlight template.
func ParseTemplate(s string) Template {
	var (
		parts Template
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, templatePart{literal: lit.String(), ref: refLiteral})
			lit.Reset()
		}
	}
	ref := func(n int) {
		flush()
		parts = append(parts, templatePart{ref: n})
	}

	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i+1 == len(s) {
			lit.WriteByte(s[i])
			continue
		}
		switch c := s[i+1]; {
		case c == '$':
			lit.WriteByte('$')
		case c == '&':
			ref(0)
		case c == '`':
			ref(refBefore)
		case c == '\'':
			ref(refAfter)
		case c >= '1' && c <= '9':
			ref(int(c - '0'))
		default:
			lit.WriteByte('$')
			continue
		}
		i++
	}
	flush()

	return parts
}

// expand writes the template for the match m (submatch indexes into text).
func (t Template) expand(b *strings.Builder, text string, m []int) {
	groups := len(m)/2 - 1
	for _, part := range t {
		switch {
		case part.ref == refLiteral:
			b.WriteString(part.literal)
		case part.ref == refBefore:
			b.WriteString(escapeText(text[:m[0]]))
		case part.ref == refAfter:
			b.WriteString(escapeText(text[m[1]:]))
		case part.ref > groups:
			b.WriteByte('$')
			b.WriteByte(byte('0' + part.ref))
		default:
			start, end := m[2*part.ref], m[2*part.ref+1]
			if start >= 0 {
				b.WriteString(escapeText(text[start:end]))
			}
		}
	}
}

func escapeText(s string) string {
	return html.EscapeString(s)
}
