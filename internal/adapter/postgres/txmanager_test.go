package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/scripture-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scripture-backend/internal/adapter/postgres/testhelper"
)

// translationExists checks whether a translation row with the given ID exists.
func translationExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM translations WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("translationExists query: %v", err)
	}
	return exists
}

func insertTranslation(ctx context.Context, q postgres.Querier, id uuid.UUID) error {
	suffix := id.String()[:8]
	_, err := q.Exec(ctx,
		`INSERT INTO translations (id, provider_id, name, slug) VALUES ($1, $2, $3, $4)`,
		id, "prov-"+suffix, "Tx Test "+suffix, "tx-"+suffix,
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertTranslation(ctx, postgres.QuerierFromCtx(ctx, pool), id)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !translationExists(t, pool, id) {
		t.Fatal("expected translation to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertTranslation(ctx, postgres.QuerierFromCtx(ctx, pool), id); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if translationExists(t, pool, id) {
		t.Fatal("expected translation NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		if translationExists(t, pool, id) {
			t.Fatal("expected translation NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertTranslation(ctx, postgres.QuerierFromCtx(ctx, pool), id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	outerID := uuid.New()
	innerID := uuid.New()
	sentinel := errors.New("outer failure")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertTranslation(ctx, postgres.QuerierFromCtx(ctx, pool), outerID); err != nil {
			return err
		}
		if err := tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertTranslation(ctx, postgres.QuerierFromCtx(ctx, pool), innerID)
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	// The inner call did not commit on its own.
	if translationExists(t, pool, outerID) || translationExists(t, pool, innerID) {
		t.Fatal("expected both rows to be rolled back with the outer transaction")
	}
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertTranslation(ctx, q, id); err != nil {
			return err
		}

		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM translations WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected translation to be visible within the transaction")
		}
		if translationExists(t, pool, id) {
			t.Fatal("expected translation NOT to be visible outside before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !translationExists(t, pool, id) {
		t.Fatal("expected translation to exist after committed transaction")
	}
}

func TestInTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	if postgres.InTx(context.Background()) {
		t.Fatal("background context must not report a transaction")
	}

	var inside bool
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		inside = postgres.InTx(ctx)
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}
	if !inside {
		t.Error("callback context should carry the transaction")
	}
}
