// Package chapter implements the chapter tier of the scripture cache: verses
// are fetched lazily, one by one, the first time a chapter is read.
//
// The provider has no "verse count" endpoint. The population loop asks for
// verse 1, 2, ... and stops when the provider answers not-found, when a verse
// repeats the preceding one word for word (the provider echoes the last verse
// past the end of a chapter), or when the configured cap is reached.
package chapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/scripture-backend/internal/config"
	"github.com/heartmarshall/scripture-backend/internal/domain"
	"github.com/heartmarshall/scripture-backend/internal/provider"
	"github.com/heartmarshall/scripture-backend/internal/service/coalesce"
)

type chapterRepo interface {
	GetOrCreate(ctx context.Context, bookID uuid.UUID, number int) (*domain.Chapter, error)
	EnsureRange(ctx context.Context, bookID uuid.UUID, from, to int) error
	UpdateProgress(ctx context.Context, id uuid.UUID, verseCount int, status domain.ChapterStatus) error
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Chapter, error)
}

type verseRepo interface {
	ListByChapter(ctx context.Context, chapterID uuid.UUID) ([]domain.Verse, error)
	Create(ctx context.Context, v *domain.Verse) error
}

type bookResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	ResolveByAbbreviationOrSlug(ctx context.Context, translationID uuid.UUID, ref string) (*domain.Book, error)
}

type translationResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error)
	Resolve(ctx context.Context, slug string) (*domain.Translation, error)
}

type verseProvider interface {
	FetchVerse(ctx context.Context, translationProviderID, bookProviderID string, chapter, verse int) (*provider.VerseResult, error)
}

// Service implements ChapterPopulator.
type Service struct {
	log          *slog.Logger
	chapters     chapterRepo
	verses       verseRepo
	books        bookResolver
	translations translationResolver
	provider     verseProvider
	cfg          config.CacheConfig
	flight       *coalesce.Group[*domain.Chapter]
	now          func() time.Time
}

// NewService creates a new chapter service.
func NewService(
	logger *slog.Logger,
	chapters chapterRepo,
	verses verseRepo,
	books bookResolver,
	translations translationResolver,
	provider verseProvider,
	cfg config.CacheConfig,
) *Service {
	return &Service{
		log:          logger.With("service", "chapter"),
		chapters:     chapters,
		verses:       verses,
		books:        books,
		translations: translations,
		provider:     provider,
		cfg:          cfg,
		flight:       coalesce.NewGroup[*domain.Chapter](cfg.PopulateTimeout),
		now:          func() time.Time { return time.Now().UTC() },
	}
}
