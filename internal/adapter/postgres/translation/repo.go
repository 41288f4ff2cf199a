// Package translation implements the Translation repository using PostgreSQL.
// Reads use raw SQL, the bulk insert is built with squirrel.
package translation

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/scripture-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scripture-backend/internal/domain"
)

// insertChunkSize keeps a multi-row insert well below the 65535 bind parameter limit.
const insertChunkSize = 1000

var insertColumns = []string{
	"id", "provider_id", "name", "language", "language_code", "version",
	"slug", "description", "book_count", "created_at", "updated_at",
}

const selectColumns = `id, provider_id, name, language, language_code, version,
    slug, description, book_count, created_at, updated_at`

const listSQL = `SELECT ` + selectColumns + ` FROM translations ORDER BY slug`

const getByIDSQL = `SELECT ` + selectColumns + ` FROM translations WHERE id = $1`

const getBySlugSQL = `SELECT ` + selectColumns + ` FROM translations WHERE slug = $1`

const updateBookCountSQL = `
UPDATE translations SET book_count = $2, updated_at = now()
WHERE id = $1`

// Repo provides translation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new translation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns every stored translation ordered by slug.
func (r *Repo) List(ctx context.Context) ([]domain.Translation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	translations, err := scanTranslations(rows)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}

	return translations, nil
}

// GetByID returns a translation by its internal id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tr, err := scanTranslation(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "translation", id)
	}

	return &tr, nil
}

// GetBySlug returns a translation by its unique slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Translation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tr, err := scanTranslation(querier.QueryRow(ctx, getBySlugSQL, slug))
	if err != nil {
		return nil, postgres.MapError(err, "translation", slug)
	}

	return &tr, nil
}

// CreateBatch inserts translations with multi-row INSERTs. A slug or provider id
// that already exists fails the batch with domain.ErrAlreadyExists.
func (r *Repo) CreateBatch(ctx context.Context, translations []domain.Translation) error {
	if len(translations) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	for chunk := range slices.Chunk(translations, insertChunkSize) {
		insert := postgres.Builder().Insert("translations").Columns(insertColumns...)
		for _, t := range chunk {
			insert = insert.Values(
				t.ID, t.ProviderID, t.Name, t.Language, t.LanguageCode, t.Version,
				t.Slug, t.Description, t.BookCount, t.CreatedAt, t.UpdatedAt,
			)
		}

		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build translations insert: %w", err)
		}

		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "translations", fmt.Sprintf("batch of %d", len(chunk)))
		}
	}

	return nil
}

// UpdateBookCount sets the number of books stored for a translation.
func (r *Repo) UpdateBookCount(ctx context.Context, id uuid.UUID, count int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateBookCountSQL, id, count)
	if err != nil {
		return postgres.MapError(err, "translation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("translation %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanTranslation(row pgx.Row) (domain.Translation, error) {
	var t domain.Translation
	err := row.Scan(
		&t.ID, &t.ProviderID, &t.Name, &t.Language, &t.LanguageCode, &t.Version,
		&t.Slug, &t.Description, &t.BookCount, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func scanTranslations(rows pgx.Rows) ([]domain.Translation, error) {
	var result []domain.Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		result = []domain.Translation{}
	}
	return result, nil
}
