// Package slug turns human-readable names written in arbitrary scripts into
// stable ASCII URL identifiers and resolves collisions against a known set.
//
// The package does no I/O. Collision scope (global, per parent entity) is
// decided by the caller through the Set it passes in.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// Placeholder is returned when an input transliterates to nothing.
	Placeholder = "untitled"

	// NumericPrefix is prepended to purely numeric slugs so they cannot be
	// mistaken for numeric identifiers in URLs.
	NumericPrefix = "n"

	// MaxLength is the longest slug ToSlug produces.
	MaxLength = 100

	// MinCutIndex is the position a word-boundary cut must lie beyond when
	// shortening a slug longer than MaxLength.
	MinCutIndex = 80
)

// ToSlug converts input into a lowercase ASCII slug.
//
// Each rune is lowercased and transliterated through a fixed table covering
// Greek, Hebrew consonants, Cyrillic and accented Latin. Runes outside the table
// are decomposed (NFD) and stripped of combining marks. Any run of characters
// that is not [a-z0-9] becomes a single hyphen and surrounding hyphens are trimmed.
func ToSlug(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	pendingHyphen := false
	for _, r := range strings.ToLower(input) {
		for _, c := range transliterate(r) {
			if isSlugChar(c) {
				if pendingHyphen && b.Len() > 0 {
					b.WriteByte('-')
				}
				pendingHyphen = false
				b.WriteRune(c)
				continue
			}
			pendingHyphen = true
		}
	}

	s := b.String()
	if s == "" {
		return Placeholder
	}
	if isNumeric(s) {
		s = NumericPrefix + s
	}
	return truncate(s)
}

// transliterate returns the ASCII rendering of a single lowercase rune.
// The result may still contain characters outside [a-z0-9]; those act as separators.
func transliterate(r rune) string {
	if r <= unicode.MaxASCII {
		return string(r)
	}
	if mapped, ok := transliterations[r]; ok {
		return mapped
	}

	// Precomposed letters outside the table (polytonic Greek, Latin with rarer
	// diacritics) lose their marks and are looked up again.
	decomposed, _, err := transform.String(stripMarks(), string(r))
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, c := range decomposed {
		if mapped, ok := transliterations[c]; ok {
			b.WriteString(mapped)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, transform.RemoveFunc(isMark))
}

func truncate(s string) string {
	if len(s) <= MaxLength {
		return s
	}
	cut := s[:MaxLength]
	if i := strings.LastIndexByte(cut, '-'); i > MinCutIndex {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, "-")
}

func isSlugChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isMark reports whether r is a Unicode non-spacing mark (accents).
func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
