// Package strings holds small text helpers shared by the client and the CLI.
package strings

import (
	"strings"
)

// minSnippetLen leaves room for one character plus "...".
const minSnippetLen = 4

// Snippet flattens s to a single line and cuts it to at most maxLen runes,
// ending with "..." when something was cut. Runs of whitespace (including
// newlines from HTML or JSON error pages) collapse to one space.
func Snippet(s string, maxLen int) string {
	if maxLen < minSnippetLen {
		maxLen = minSnippetLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
