// Package textutil provides small string helpers shared by the catalogue
// pipeline and the renderer.
package textutil

import "strings"

// TrimPunctuation removes leading and trailing whitespace, commas and
// periods from s.
func TrimPunctuation(s string) string {
	return strings.Trim(s, " \t\r\n,.")
}

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateWords cuts text after max words, appending an ellipsis when
// anything was removed.
func TruncateWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return text
	}

	return strings.Join(words[:max], " ") + "..."
}
