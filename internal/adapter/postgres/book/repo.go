// Package book implements the Book repository using PostgreSQL.
package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/scripture-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scripture-backend/internal/domain"
)

var insertColumns = []string{
	"id", "translation_id", "provider_id", "name", "book_order",
	"abbreviation", "slug", "chapter_count", "created_at", "updated_at",
}

const selectColumns = `id, translation_id, provider_id, name, book_order,
    abbreviation, slug, chapter_count, created_at, updated_at`

const listByTranslationSQL = `SELECT ` + selectColumns + `
FROM books
WHERE translation_id = $1
ORDER BY book_order`

const getByIDSQL = `SELECT ` + selectColumns + ` FROM books WHERE id = $1`

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new book repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListByTranslation returns a translation's books in canonical order.
func (r *Repo) ListByTranslation(ctx context.Context, translationID uuid.UUID) ([]domain.Book, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByTranslationSQL, translationID)
	if err != nil {
		return nil, fmt.Errorf("list books of %s: %w", translationID, err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books of %s: %w", translationID, err)
	}

	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

// GetByID returns a book by its internal id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b, err := scanBook(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "book", id)
	}

	return &b, nil
}

// CreateBatch inserts a translation's books in one multi-row INSERT.
// An unknown translation maps to domain.ErrNotFound, a duplicate slug to
// domain.ErrAlreadyExists.
func (r *Repo) CreateBatch(ctx context.Context, books []domain.Book) error {
	if len(books) == 0 {
		return nil
	}

	insert := postgres.Builder().Insert("books").Columns(insertColumns...)
	for _, b := range books {
		insert = insert.Values(
			b.ID, b.TranslationID, b.ProviderID, b.Name, b.Order,
			b.Abbreviation, b.Slug, b.ChapterCount, b.CreatedAt, b.UpdatedAt,
		)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build books insert: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "books of translation", books[0].TranslationID)
	}

	return nil
}

func scanBook(row pgx.Row) (domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ID, &b.TranslationID, &b.ProviderID, &b.Name, &b.Order,
		&b.Abbreviation, &b.Slug, &b.ChapterCount, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}
