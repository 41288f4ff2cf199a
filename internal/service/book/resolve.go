package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/domain"
)

// ResolveByAbbreviationOrSlug finds a book of the translation by a
// case-insensitive reference. Abbreviation matches win over provider id
// matches, which win over slug matches.
func (s *Service) ResolveByAbbreviationOrSlug(ctx context.Context, translationID uuid.UUID, ref string) (*domain.Book, error) {
	ref = domain.NormalizeRef(ref)
	if ref == "" {
		return nil, domain.NewValidationError("book", "required")
	}

	books, err := s.ListByTranslation(ctx, translationID)
	if err != nil {
		return nil, err
	}

	matchers := []func(b domain.Book) string{
		func(b domain.Book) string { return b.Abbreviation },
		func(b domain.Book) string { return b.ProviderID },
		func(b domain.Book) string { return b.Slug },
	}

	for _, field := range matchers {
		for i := range books {
			if strings.EqualFold(domain.NormalizeRef(field(books[i])), ref) {
				return &books[i], nil
			}
		}
	}

	return nil, fmt.Errorf("book %q: %w", ref, domain.ErrNotFound)
}
