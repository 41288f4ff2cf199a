// Package verse implements the Verse repository using PostgreSQL.
package verse

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/scripture-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scripture-backend/internal/domain"
)

const listByChapterSQL = `
SELECT id, chapter_id, number, content, created_at, updated_at
FROM verses
WHERE chapter_id = $1
ORDER BY number`

const createSQL = `
INSERT INTO verses (id, chapter_id, number, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Repo provides verse persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new verse repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListByChapter returns a chapter's verses in ascending number order.
func (r *Repo) ListByChapter(ctx context.Context, chapterID uuid.UUID) ([]domain.Verse, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByChapterSQL, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list verses of %s: %w", chapterID, err)
	}
	defer rows.Close()

	verses := []domain.Verse{}
	for rows.Next() {
		var v domain.Verse
		if err := rows.Scan(&v.ID, &v.ChapterID, &v.Number, &v.Content, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan verse: %w", err)
		}
		verses = append(verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list verses of %s: %w", chapterID, err)
	}

	return verses, nil
}

// Create inserts one verse. A second verse with the same number in the same
// chapter fails with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, v *domain.Verse) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL, v.ID, v.ChapterID, v.Number, v.Content, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "verse", fmt.Sprintf("%s:%d", v.ChapterID, v.Number))
	}

	return nil
}
