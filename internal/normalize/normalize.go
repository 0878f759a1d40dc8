// Package normalize holds the canonical forms used for storage and comparison.
package normalize

import "strings"

// Email returns a normalized form of an email address suitable for
// storage and comparisons. Normalization trims surrounding whitespace
// and lower-cases the address.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Body returns message text as it is stored: surrounding whitespace
// removed. An empty result means there is nothing to send.
func Body(s string) string {
	return strings.TrimSpace(s)
}

// DisplayName collapses runs of whitespace so names render on a single line.
func DisplayName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
