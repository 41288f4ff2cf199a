package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/domain"
	"github.com/heartmarshall/scripture-backend/internal/provider"
	"github.com/heartmarshall/scripture-backend/pkg/slug"
)

// ListByTranslation returns a translation's books ordered by canonical order,
// populating them from the provider when none are stored.
func (s *Service) ListByTranslation(ctx context.Context, translationID uuid.UUID) ([]domain.Book, error) {
	if translationID == uuid.Nil {
		return nil, domain.NewValidationError("translation_id", "required")
	}

	stored, err := s.books.ListByTranslation(ctx, translationID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if len(stored) > 0 {
		return stored, nil
	}

	books, _, err := s.flight.Do(ctx, translationID.String(), func(ctx context.Context) ([]domain.Book, error) {
		return s.populate(ctx, translationID)
	})
	if err != nil {
		return nil, err
	}

	return books, nil
}

// populate fetches the book catalog of a translation and stores it together
// with the translation's book count in one transaction.
func (s *Service) populate(ctx context.Context, translationID uuid.UUID) ([]domain.Book, error) {
	stored, err := s.books.ListByTranslation(ctx, translationID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if len(stored) > 0 {
		return stored, nil
	}

	tr, err := s.translations.GetByID(ctx, translationID)
	if err != nil {
		return nil, fmt.Errorf("resolve translation: %w", err)
	}

	results, err := s.provider.FetchBooks(ctx, tr.ProviderID)
	if err != nil {
		s.log.ErrorContext(ctx, "fetch book catalog failed",
			slog.String("translation", tr.Slug),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("fetch books of %s: %w", tr.Slug, err)
	}

	books, err := s.buildBooks(translationID, results)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		s.log.WarnContext(ctx, "provider returned no books", slog.String("translation", tr.Slug))
		return books, nil
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.books.CreateBatch(txCtx, books); err != nil {
			return err
		}
		return s.counter.UpdateBookCount(txCtx, translationID, len(books))
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.log.InfoContext(ctx, "books populated concurrently, re-reading", slog.String("translation", tr.Slug))
			stored, readErr := s.books.ListByTranslation(ctx, translationID)
			if readErr != nil {
				return nil, fmt.Errorf("list books after conflict: %w", readErr)
			}
			return stored, nil
		}
		return nil, fmt.Errorf("store books of %s: %w", tr.Slug, err)
	}

	s.log.InfoContext(ctx, "book catalog populated",
		slog.String("translation", tr.Slug),
		slog.Int("count", len(books)),
	)

	return books, nil
}

// buildBooks maps provider results to books with 1-based order and slugs scoped
// to the translation. Slug base is the name; the collision suffix is the abbreviation.
func (s *Service) buildBooks(translationID uuid.UUID, results []provider.BookResult) ([]domain.Book, error) {
	assigner := slug.NewAssigner()
	now := s.now()

	books := make([]domain.Book, 0, len(results))
	for i, r := range results {
		sl, err := assigner.Assign(r.Name, r.Abbreviation)
		if err != nil {
			return nil, fmt.Errorf("assign slug for book %s: %w: %w", r.ProviderID, domain.ErrSlugCollisionExhausted, err)
		}

		books = append(books, domain.Book{
			ID:            uuid.New(),
			TranslationID: translationID,
			ProviderID:    r.ProviderID,
			Name:          r.Name,
			Order:         i + 1,
			Abbreviation:  r.Abbreviation,
			Slug:          sl,
			ChapterCount:  r.ChapterCount,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	return books, nil
}
