// Package util provides shared utility functions used across the codebase.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis is appended to lines cut by TruncateANSI.
const Ellipsis = "…"

// CollapseSpace trims s and replaces every run of whitespace with a single
// space, the way a browser lays out element text.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateANSI truncates a string to maxWidth visual columns, ending it with
// Ellipsis if truncated. ANSI escape codes and wide characters are handled, so
// styled terminal output keeps its styling. A non-positive maxWidth means no
// limit.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= 0 || lipgloss.Width(s) <= maxWidth {
		return s
	}
	// ansi.Truncate includes the tail in the final width calculation
	return ansi.Truncate(s, maxWidth, Ellipsis)
}
