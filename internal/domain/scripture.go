package domain

import (
	"time"

	"github.com/google/uuid"
)

// Translation is one edition of the scripture text in a given language.
// Created on the first miss of the translation list and never deleted.
type Translation struct {
	ID           uuid.UUID
	ProviderID   string
	Name         string
	Language     string
	LanguageCode string
	Version      string
	Slug         string
	Description  string
	BookCount    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Book belongs to exactly one translation. Slug is unique within that translation only.
type Book struct {
	ID            uuid.UUID
	TranslationID uuid.UUID
	ProviderID    string
	Name          string
	Order         int
	Abbreviation  string
	Slug          string
	// ChapterCount excludes the provider's "intro" pseudo-chapter.
	ChapterCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IntroChapterNumber addresses the provider's non-numbered introduction chapter.
const IntroChapterNumber = 0

// Chapter is one chapter of a book with its lazily populated verses.
//
// VerseCount is a population-progress counter: after a pass it holds one past
// the last verse number that was requested from the provider. It is not a
// verified total; use Status to decide whether population has finished.
type Chapter struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	Number     int
	VerseCount int
	Status     ChapterStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Verses []Verse
}

// IsIntro reports whether the chapter is the provider's introduction.
func (c *Chapter) IsIntro() bool {
	return c.Number == IntroChapterNumber
}

// LastVerse returns the highest-numbered persisted verse, or nil when there are none.
// Verses are kept in ascending number order.
func (c *Chapter) LastVerse() *Verse {
	if len(c.Verses) == 0 {
		return nil
	}
	return &c.Verses[len(c.Verses)-1]
}

// Verse is a single verse. Verses of a chapter are created strictly in ascending order.
type Verse struct {
	ID        uuid.UUID
	ChapterID uuid.UUID
	Number    int
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
