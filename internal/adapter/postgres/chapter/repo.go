// Package chapter implements the Chapter repository using PostgreSQL.
// Chapter rows are created idempotently: (book_id, number) is unique and every
// insert path uses ON CONFLICT DO NOTHING.
package chapter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/scripture-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scripture-backend/internal/domain"
)

const selectColumns = `id, book_id, number, verse_count, status, created_at, updated_at`

const getByBookAndNumberSQL = `SELECT ` + selectColumns + `
FROM chapters
WHERE book_id = $1 AND number = $2`

const listByBookSQL = `SELECT ` + selectColumns + `
FROM chapters
WHERE book_id = $1
ORDER BY number`

const insertIfAbsentSQL = `
INSERT INTO chapters (id, book_id, number, verse_count, status, created_at, updated_at)
VALUES ($1, $2, $3, 0, 'NOT_POPULATED', $4, $4)
ON CONFLICT (book_id, number) DO NOTHING`

const updateProgressSQL = `
UPDATE chapters SET verse_count = $2, status = $3, updated_at = now()
WHERE id = $1`

// Repo provides chapter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new chapter repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByBookAndNumber returns the chapter row without verses.
func (r *Repo) GetByBookAndNumber(ctx context.Context, bookID uuid.UUID, number int) (*domain.Chapter, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ch, err := scanChapter(querier.QueryRow(ctx, getByBookAndNumberSQL, bookID, number))
	if err != nil {
		return nil, postgres.MapError(err, "chapter", chapterKey(bookID, number))
	}

	return &ch, nil
}

// GetOrCreate returns the chapter row, inserting an empty NOT_POPULATED one
// when absent. Concurrent callers converge on the same row.
func (r *Repo) GetOrCreate(ctx context.Context, bookID uuid.UUID, number int) (*domain.Chapter, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertIfAbsentSQL, uuid.New(), bookID, number, time.Now().UTC())
	if err != nil {
		return nil, postgres.MapError(err, "chapter", chapterKey(bookID, number))
	}

	return r.GetByBookAndNumber(ctx, bookID, number)
}

// EnsureRange creates the missing chapter rows from..to (inclusive) in a single
// INSERT. Existing rows are left untouched.
func (r *Repo) EnsureRange(ctx context.Context, bookID uuid.UUID, from, to int) error {
	if from > to {
		return nil
	}

	now := time.Now().UTC()
	insert := postgres.Builder().
		Insert("chapters").
		Columns("id", "book_id", "number", "verse_count", "status", "created_at", "updated_at").
		Suffix("ON CONFLICT (book_id, number) DO NOTHING")
	for n := from; n <= to; n++ {
		insert = insert.Values(uuid.New(), bookID, n, 0, string(domain.ChapterStatusNotPopulated), now, now)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build chapters insert: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "chapters of book", bookID)
	}

	return nil
}

// UpdateProgress records the population counter and status of a chapter.
func (r *Repo) UpdateProgress(ctx context.Context, id uuid.UUID, verseCount int, status domain.ChapterStatus) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateProgressSQL, id, verseCount, string(status))
	if err != nil {
		return postgres.MapError(err, "chapter", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByBook returns a book's chapter rows in ascending number order.
func (r *Repo) ListByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Chapter, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByBookSQL, bookID)
	if err != nil {
		return nil, fmt.Errorf("list chapters of %s: %w", bookID, err)
	}
	defer rows.Close()

	chapters := []domain.Chapter{}
	for rows.Next() {
		ch, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list chapters of %s: %w", bookID, err)
	}

	return chapters, nil
}

func scanChapter(row pgx.Row) (domain.Chapter, error) {
	var (
		ch     domain.Chapter
		status string
	)
	err := row.Scan(&ch.ID, &ch.BookID, &ch.Number, &ch.VerseCount, &status, &ch.CreatedAt, &ch.UpdatedAt)
	ch.Status = domain.ChapterStatus(status)
	return ch, err
}

func chapterKey(bookID uuid.UUID, number int) string {
	return fmt.Sprintf("%s:%d", bookID, number)
}
