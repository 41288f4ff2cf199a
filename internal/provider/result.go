// Package provider holds the results returned by upstream content providers and
// the errors they classify failures with.
package provider

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/scripture-backend/internal/domain"
)

// TranslationResult is one translation from the provider's catalog.
type TranslationResult struct {
	ProviderID string
	Name       string
	Language   string
	// LanguageID is the provider's language code, usually ISO 639-3 ("eng").
	LanguageID  string
	Version     string
	Description string
}

// BookResult is one book of a translation's catalog.
type BookResult struct {
	ProviderID   string
	Name         string
	Abbreviation string
	// ChapterCount excludes the "intro" pseudo-chapter.
	ChapterCount int
}

// VerseResult is the plain-text content of a single verse.
type VerseResult struct {
	ProviderID string
	Content    string
}

// Errors a provider adapter wraps its failures with.
//
// ErrNotFound is the explicit "no such resource" signal (HTTP 404) and matches
// domain.ErrNotFound. ErrUnavailable and ErrMalformed match domain.ErrProvider.
var (
	ErrNotFound    = fmt.Errorf("provider: %w", domain.ErrNotFound)
	ErrUnavailable = fmt.Errorf("provider unavailable: %w", domain.ErrProvider)
	ErrMalformed   = fmt.Errorf("provider malformed payload: %w", domain.ErrProvider)
)

// IsNotFound reports whether err is the provider's explicit not-found signal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
