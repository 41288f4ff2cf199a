// Command warmup fills the cache ahead of readers. It populates the
// translation list, the books of one translation and then every chapter of
// those books, one chapter at a time through the same population path the
// API uses.
//
// Usage:
//
//	warmup -translation kjv [-book gen] [-timeout 2h]
//
// Without -book every book of the translation is populated. Chapters that a
// provider failure left incomplete are reported and resumed on the next run.
//
// Exit codes: 0 = success, 1 = error, 2 = finished with incomplete chapters.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/scripture-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scripture-backend/internal/app"
	"github.com/heartmarshall/scripture-backend/internal/config"
	"github.com/heartmarshall/scripture-backend/internal/domain"
	"github.com/heartmarshall/scripture-backend/pkg/ctxutil"
)

func main() {
	translationSlug := flag.String("translation", "", "translation slug to populate (required)")
	bookRef := flag.String("book", "", "book abbreviation, provider id or slug; empty means every book")
	timeout := flag.Duration("timeout", 2*time.Hour, "overall time limit")
	flag.Parse()

	if *translationSlug == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctxutil.WithOrigin(ctx, "warmup"), *timeout)
	defer cancel()

	code := run(ctx, cfg, logger, *translationSlug, *bookRef)
	cancel()
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, translationSlug, bookRef string) int {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
		logger.Error("migrate", slog.String("error", err.Error()))
		return 1
	}

	svc := app.NewServices(pool, cfg, logger)

	tr, err := svc.Translations.Resolve(ctx, translationSlug)
	if err != nil {
		logger.Error("resolve translation", slog.String("translation", translationSlug), slog.String("error", err.Error()))
		return 1
	}

	var books []domain.Book
	if bookRef != "" {
		b, err := svc.Books.ResolveByAbbreviationOrSlug(ctx, tr.ID, bookRef)
		if err != nil {
			logger.Error("resolve book", slog.String("book", bookRef), slog.String("error", err.Error()))
			return 1
		}
		books = []domain.Book{*b}
	} else {
		books, err = svc.Books.ListByTranslation(ctx, tr.ID)
		if err != nil {
			logger.Error("list books", slog.String("error", err.Error()))
			return 1
		}
	}

	start := time.Now()
	var chapters, verses, incomplete int

	for _, b := range books {
		report, err := svc.Chapters.PopulateBook(ctx, b.ID)
		chapters += report.Chapters
		verses += report.Verses
		incomplete += report.Incomplete
		if err != nil {
			logger.Error("populate book",
				slog.String("book", b.Slug),
				slog.Int("chapters_done", report.Chapters),
				slog.String("error", err.Error()),
			)
			return 1
		}
	}

	logger.Info("warmup completed",
		slog.String("translation", tr.Slug),
		slog.Int("books", len(books)),
		slog.Int("chapters", chapters),
		slog.Int("verses", verses),
		slog.Int("incomplete", incomplete),
		slog.Duration("elapsed", time.Since(start)),
	)

	if incomplete > 0 {
		return 2
	}
	return 0
}
