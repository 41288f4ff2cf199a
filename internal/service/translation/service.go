// Package translation implements the translation tier of the scripture cache:
// the catalog is read from the store and populated from the content provider
// the first time the store is empty.
package translation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/domain"
	"github.com/heartmarshall/scripture-backend/internal/provider"
	"github.com/heartmarshall/scripture-backend/internal/service/coalesce"
)

type translationRepo interface {
	List(ctx context.Context) ([]domain.Translation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Translation, error)
	CreateBatch(ctx context.Context, translations []domain.Translation) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type catalogProvider interface {
	FetchTranslations(ctx context.Context) ([]provider.TranslationResult, error)
}

// catalogKey is the single population key of the translation tier.
const catalogKey = "translations"

// Service implements TranslationCache.
type Service struct {
	log          *slog.Logger
	translations translationRepo
	tx           txManager
	provider     catalogProvider
	flight       *coalesce.Group[[]domain.Translation]
	now          func() time.Time
}

// NewService creates a new translation service.
func NewService(
	logger *slog.Logger,
	translations translationRepo,
	tx txManager,
	provider catalogProvider,
) *Service {
	return &Service{
		log:          logger.With("service", "translation"),
		translations: translations,
		tx:           tx,
		provider:     provider,
		flight:       coalesce.NewGroup[[]domain.Translation](0),
		now:          func() time.Time { return time.Now().UTC() },
	}
}
