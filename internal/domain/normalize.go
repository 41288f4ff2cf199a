package domain

import (
	"strings"
)

// NormalizeRef prepares a user-supplied reference (slug, abbreviation, provider id)
// for case-insensitive comparison: trims surrounding whitespace, lowercases and
// compresses inner whitespace runs into a single space.
func NormalizeRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(ref), " "))
}
