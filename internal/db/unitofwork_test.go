package db_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/renovo/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertOutcome(ctx context.Context, tx db.DBTX, quoteID string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO feedback_history (quote_id, accepted, ts) VALUES (?, 1, '2026-01-01T00:00:00Z')`, quoteID)
	return err
}

func countOutcomes(t *testing.T, uow *db.SQLiteUnitOfWork, quoteID string) int {
	t.Helper()
	var n int
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback_history WHERE quote_id = ?`, quoteID).Scan(&n)
	})
	require.NoError(t, err)
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertOutcome(ctx, tx, "Q-commit")
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countOutcomes(t, uow, "Q-commit"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertOutcome(ctx, tx, "Q-rollback"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.Equal(t, 0, countOutcomes(t, uow, "Q-rollback"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertOutcome(ctx, tx, "Q-panic")
			panic("boom")
		})
	})

	assert.Equal(t, 0, countOutcomes(t, uow, "Q-panic"))
}

func TestWithinTx_SerializesReadModifyWrite(t *testing.T) {
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "uow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	uow := db.NewSQLiteUnitOfWork(database)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
				var n int
				if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback_history`).Scan(&n); err != nil {
					return err
				}
				return insertOutcome(ctx, tx, fmt.Sprintf("Q-seq-%02d", n))
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var distinct int
	require.NoError(t, database.QueryRow(`SELECT COUNT(DISTINCT quote_id) FROM feedback_history`).Scan(&distinct))
	assert.Equal(t, writers, distinct, "every writer saw the previous writer's row")
}
