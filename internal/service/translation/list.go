package translation

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

// ListAll returns every stored translation. An empty store is populated from the
// provider catalog first; concurrent first calls share one population.
func (s *Service) ListAll(ctx context.Context) ([]domain.Translation, error) {
	stored, err := s.translations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	if len(stored) > 0 {
		return stored, nil
	}

	populated, _, err := s.flight.Do(ctx, catalogKey, s.populate)
	if err != nil {
		return nil, err
	}

	return populated, nil
}

// populate fetches the catalog, assigns slugs and stores it in one transaction.
func (s *Service) populate(ctx context.Context) ([]domain.Translation, error) {
	// A flight that finished just before this one started may already have filled the store.
	stored, err := s.translations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	if len(stored) > 0 {
		return stored, nil
	}

	results, err := s.provider.FetchTranslations(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "fetch translation catalog failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("fetch translation catalog: %w", err)
	}

	translations, err := s.buildTranslations(results)
	if err != nil {
		return nil, err
	}
	if len(translations) == 0 {
		s.log.WarnContext(ctx, "provider returned an empty translation catalog")
		return translations, nil
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.translations.CreateBatch(txCtx, translations)
	})
	if err != nil {
		// Another instance populated the tier between our read and write.
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.log.InfoContext(ctx, "translation catalog populated concurrently, re-reading")
			stored, readErr := s.translations.List(ctx)
			if readErr != nil {
				return nil, fmt.Errorf("list translations after conflict: %w", readErr)
			}
			return stored, nil
		}
		return nil, fmt.Errorf("store translation catalog: %w", err)
	}

	s.log.InfoContext(ctx, "translation catalog populated", slog.Int("count", len(translations)))

	return translations, nil
}

// buildTranslations maps provider results to domain translations with unique slugs.
// Slug base is the version label; the collision suffix is the language code.
func (s *Service) buildTranslations(results []provider.TranslationResult) ([]domain.Translation, error) {
	assigner := slug.NewAssigner()
	now := s.now()

	translations := make([]domain.Translation, 0, len(results))
	for _, r := range results {
		code := LanguageCode(r.LanguageID, r.Language)

		base := r.Version
		if base == "" {
			base = r.Name
		}

		sl, err := assigner.Assign(base, code)
		if err != nil {
			return nil, fmt.Errorf("assign slug for translation %s: %w: %w", r.ProviderID, domain.ErrSlugCollisionExhausted, err)
		}

		translations = append(translations, domain.Translation{
			ID:           uuid.New(),
			ProviderID:   r.ProviderID,
			Name:         r.Name,
			Language:     r.Language,
			LanguageCode: code,
			Version:      r.Version,
			Slug:         sl,
			Description:  r.Description,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	return translations, nil
}
