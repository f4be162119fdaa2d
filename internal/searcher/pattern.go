package searcher

import (
	"regexp"
	"strings"
)

// metaChars are the characters escaped by EscapePattern.
const metaChars = `.*+?^=!:${}()|[]/\`

// EscapePattern prefixes every pattern metacharacter in text with a
// backslash so that the result matches text literally. Invalid UTF-8 is
// replaced with U+FFFD, the rune the matcher reads for such bytes.
func EscapePattern(text string) string {
	text = validUTF8(text)
	if !strings.ContainsAny(text, metaChars) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, r := range text {
		if strings.ContainsRune(metaChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// validUTF8 replaces each run of invalid bytes in s with U+FFFD, so terms
// and item texts read the same way.
func validUTF8(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// Pattern is a compiled search term. The term is matched literally inside a
// single capturing group, which highlight templates refer to as $1.
type Pattern struct {
	term   string
	source string
	flags  string
	re     *regexp.Regexp
}

// BuildPattern compiles term into a Pattern. The pattern is multiline and,
// unless caseSensitive is set, case-insensitive. An empty term matches every
// string.
func BuildPattern(term string, caseSensitive bool) *Pattern {
	source := "(" + EscapePattern(term) + ")"

	flags, prefix := "gm", "(?m)"
	if !caseSensitive {
		flags, prefix = "gmi", "(?mi)"
	}

	return &Pattern{
		term:   term,
		source: source,
		flags:  flags,
		re:     regexp.MustCompile(prefix + source),
	}
}

// Term returns the raw search term.
func (p *Pattern) Term() string {
	return p.term
}

// Empty reports whether the term is empty.
func (p *Pattern) Empty() bool {
	return p.term == ""
}

// Signature returns the canonical form of the pattern, /source/flags.
// Two patterns with equal signatures match identically.
func (p *Pattern) Signature() string {
	return "/" + p.source + "/" + p.flags
}

// String implements fmt.Stringer.
func (p *Pattern) String() string {
	return p.Signature()
}

// Regexp returns the compiled expression.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// MatchString reports whether text contains the term.
func (p *Pattern) MatchString(text string) bool {
	return p.re.MatchString(validUTF8(text))
}

// Highlight renders text as markup with every match wrapped in tmpl.
// See ParseTemplate for the template syntax.
func (p *Pattern) Highlight(text, tmpl string) string {
	return p.render(text, ParseTemplate(tmpl))
}

// render escapes text as HTML and substitutes every non-empty match with
// the expanded template.
func (p *Pattern) render(text string, tmpl Template) string {
	text = validUTF8(text)
	matches := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return escapeText(text)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m[0] == m[1] {
			continue
		}
		b.WriteString(escapeText(text[last:m[0]]))
		tmpl.expand(&b, text, m)
		last = m[1]
	}
	b.WriteString(escapeText(text[last:]))
	return b.String()
}
