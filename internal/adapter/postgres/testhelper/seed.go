package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/scripture-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedTranslation inserts a translation with a unique slug and provider id.
func SeedTranslation(t *testing.T, pool *pgxpool.Pool) domain.Translation {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	tr := domain.Translation{
		ID:           uuid.New(),
		ProviderID:   "bible-" + suffix,
		Name:         "Test Version " + suffix,
		Language:     "English",
		LanguageCode: "en",
		Version:      "TV" + suffix,
		Slug:         "tv-" + suffix,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO translations (id, provider_id, name, language, language_code, version, slug, description, book_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		tr.ID, tr.ProviderID, tr.Name, tr.Language, tr.LanguageCode, tr.Version, tr.Slug, tr.Description, tr.BookCount, tr.CreatedAt, tr.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTranslation: %v", err)
	}

	return tr
}

// SeedBook inserts a book into the given translation.
func SeedBook(t *testing.T, pool *pgxpool.Pool, translationID uuid.UUID, order, chapterCount int) domain.Book {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	b := domain.Book{
		ID:            uuid.New(),
		TranslationID: translationID,
		ProviderID:    "B" + suffix,
		Name:          "Book " + suffix,
		Order:         order,
		Abbreviation:  "B" + suffix[:3],
		Slug:          "book-" + suffix,
		ChapterCount:  chapterCount,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO books (id, translation_id, provider_id, name, book_order, abbreviation, slug, chapter_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.TranslationID, b.ProviderID, b.Name, b.Order, b.Abbreviation, b.Slug, b.ChapterCount, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBook: %v", err)
	}

	return b
}

// SeedChapter inserts an empty NOT_POPULATED chapter row.
func SeedChapter(t *testing.T, pool *pgxpool.Pool, bookID uuid.UUID, number int) domain.Chapter {
	t.Helper()

	ts := now()
	ch := domain.Chapter{
		ID:        uuid.New(),
		BookID:    bookID,
		Number:    number,
		Status:    domain.ChapterStatusNotPopulated,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO chapters (id, book_id, number, verse_count, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ch.ID, ch.BookID, ch.Number, ch.VerseCount, string(ch.Status), ch.CreatedAt, ch.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedChapter: %v", err)
	}

	return ch
}

// SeedVerse inserts a verse into the given chapter.
func SeedVerse(t *testing.T, pool *pgxpool.Pool, chapterID uuid.UUID, number int, content string) domain.Verse {
	t.Helper()

	ts := now()
	v := domain.Verse{
		ID:        uuid.New(),
		ChapterID: chapterID,
		Number:    number,
		Content:   content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO verses (id, chapter_id, number, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.ChapterID, v.Number, v.Content, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVerse: %v", err)
	}

	return v
}
