package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/scripture-backend/internal/adapter/postgres"
	bookrepo "github.com/heartmarshall/scripture-backend/internal/adapter/postgres/book"
	chapterrepo "github.com/heartmarshall/scripture-backend/internal/adapter/postgres/chapter"
	translationrepo "github.com/heartmarshall/scripture-backend/internal/adapter/postgres/translation"
	verserepo "github.com/heartmarshall/scripture-backend/internal/adapter/postgres/verse"
	"github.com/heartmarshall/scripture-backend/internal/adapter/provider/apibible"
	"github.com/heartmarshall/scripture-backend/internal/config"
	booksvc "github.com/heartmarshall/scripture-backend/internal/service/book"
	chaptersvc "github.com/heartmarshall/scripture-backend/internal/service/chapter"
	translationsvc "github.com/heartmarshall/scripture-backend/internal/service/translation"
)

// Services are the three cache tiers wired over Postgres and the provider.
type Services struct {
	Translations *translationsvc.Service
	Books        *booksvc.Service
	Chapters     *chaptersvc.Service
}

// NewServices wires repositories, the provider client and the cache services.
func NewServices(pool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) *Services {
	txm := postgres.NewTxManager(pool)

	translations := translationrepo.New(pool)
	books := bookrepo.New(pool)
	chapters := chapterrepo.New(pool)
	verses := verserepo.New(pool)

	client := apibible.NewProvider(cfg.Provider, logger)

	translationService := translationsvc.NewService(logger, translations, txm, client)
	bookService := booksvc.NewService(logger, books, translations, translationService, txm, client)
	chapterService := chaptersvc.NewService(logger, chapters, verses, bookService, translationService, client, cfg.Cache)

	return &Services{
		Translations: translationService,
		Books:        bookService,
		Chapters:     chapterService,
	}
}
