// Package book implements the book tier of the scripture cache. A translation's
// books are fetched from the provider on first access and stored with slugs
// unique within that translation.
package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/domain"
	"github.com/heartmarshall/scripture-backend/internal/provider"
	"github.com/heartmarshall/scripture-backend/internal/service/coalesce"
)

type bookRepo interface {
	ListByTranslation(ctx context.Context, translationID uuid.UUID) ([]domain.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	CreateBatch(ctx context.Context, books []domain.Book) error
}

type bookCounter interface {
	UpdateBookCount(ctx context.Context, translationID uuid.UUID, count int) error
}

type translationResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type bookProvider interface {
	FetchBooks(ctx context.Context, translationProviderID string) ([]provider.BookResult, error)
}

// Service implements BookCache.
type Service struct {
	log          *slog.Logger
	books        bookRepo
	counter      bookCounter
	translations translationResolver
	tx           txManager
	provider     bookProvider
	flight       *coalesce.Group[[]domain.Book]
	now          func() time.Time
}

// NewService creates a new book service.
func NewService(
	logger *slog.Logger,
	books bookRepo,
	counter bookCounter,
	translations translationResolver,
	tx txManager,
	provider bookProvider,
) *Service {
	return &Service{
		log:          logger.With("service", "book"),
		books:        books,
		counter:      counter,
		translations: translations,
		tx:           tx,
		provider:     provider,
		flight:       coalesce.NewGroup[[]domain.Book](0),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// GetByID returns a stored book. It never triggers population.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("book_id", "required")
	}

	return s.books.GetByID(ctx, id)
}
