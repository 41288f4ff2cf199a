package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/domain"
)

// GetBySlug returns the translation with the given slug. Lookup is exact after
// lowercasing; there is no fallback to version labels.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Translation, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	return s.translations.GetBySlug(ctx, slug)
}

// GetByID returns a stored translation. It never triggers population.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("translation_id", "required")
	}

	return s.translations.GetByID(ctx, id)
}

// Resolve is GetBySlug for read paths that may be the first request against an
// empty store: a miss lists the catalog, populating it when nothing is stored,
// and looks the slug up again.
func (s *Service) Resolve(ctx context.Context, slug string) (*domain.Translation, error) {
	tr, err := s.GetBySlug(ctx, slug)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return tr, err
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	slug = strings.ToLower(strings.TrimSpace(slug))
	for i := range all {
		if all[i].Slug == slug {
			return &all[i], nil
		}
	}

	return nil, fmt.Errorf("translation %s: %w", slug, domain.ErrNotFound)
}
