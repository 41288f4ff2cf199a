package chapter

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/domain"
)

// GetFullChapter returns a chapter with its verses in ascending order. A chapter
// that is not yet populated is populated first; concurrent readers of the same
// chapter share one population pass. Provider failures end the pass early and
// are not returned: the caller gets the verses stored so far.
func (s *Service) GetFullChapter(ctx context.Context, bookID uuid.UUID, number int) (*domain.Chapter, error) {
	if bookID == uuid.Nil {
		return nil, domain.NewValidationError("book_id", "required")
	}
	if number < 0 {
		return nil, domain.NewValidationError("chapter", "must be >= 0")
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if number > book.ChapterCount {
		return nil, fmt.Errorf("chapter %d of %s (has %d): %w", number, book.Slug, book.ChapterCount, domain.ErrNotFound)
	}

	ch, err := s.chapters.GetOrCreate(ctx, bookID, number)
	if err != nil {
		return nil, fmt.Errorf("get chapter: %w", err)
	}

	if !ch.Status.NeedsPopulation() {
		if err := s.loadVerses(ctx, ch); err != nil {
			return nil, err
		}
		return ch, nil
	}

	key := fmt.Sprintf("%s:%d", bookID, number)
	populated, _, err := s.flight.Do(ctx, key, func(ctx context.Context) (*domain.Chapter, error) {
		return s.populate(ctx, book, number)
	})
	if err != nil {
		return nil, err
	}

	// The flight result is shared between callers.
	out := *populated
	out.Verses = slices.Clone(populated.Verses)
	return &out, nil
}

// GetChapterByReference resolves a translation slug and a book reference
// (abbreviation, provider id or slug) and returns the full chapter.
func (s *Service) GetChapterByReference(ctx context.Context, translationSlug, bookRef string, number int) (*domain.Chapter, error) {
	tr, err := s.translations.Resolve(ctx, translationSlug)
	if err != nil {
		return nil, fmt.Errorf("resolve translation: %w", err)
	}

	book, err := s.books.ResolveByAbbreviationOrSlug(ctx, tr.ID, bookRef)
	if err != nil {
		return nil, fmt.Errorf("resolve book: %w", err)
	}

	return s.GetFullChapter(ctx, book.ID, number)
}

// ListChapters makes sure every chapter row of the book exists, introduction
// included, and returns the rows without verses.
func (s *Service) ListChapters(ctx context.Context, bookID uuid.UUID) ([]domain.Chapter, error) {
	if bookID == uuid.Nil {
		return nil, domain.NewValidationError("book_id", "required")
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	if err := s.chapters.EnsureRange(ctx, bookID, domain.IntroChapterNumber, book.ChapterCount); err != nil {
		return nil, fmt.Errorf("ensure chapters: %w", err)
	}

	chapters, err := s.chapters.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	return chapters, nil
}

func (s *Service) loadVerses(ctx context.Context, ch *domain.Chapter) error {
	verses, err := s.verses.ListByChapter(ctx, ch.ID)
	if err != nil {
		return fmt.Errorf("list verses: %w", err)
	}
	ch.Verses = verses
	return nil
}
