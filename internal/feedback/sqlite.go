package feedback

import (
	"context"
	"fmt"

	"github.com/alexanderramin/renovo/internal/db"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/repository"
)

// SQLiteBackend keeps feedback state in the feedback_history and
// productivity tables. Every operation runs in one transaction.
type SQLiteBackend struct {
	uow db.UnitOfWork
}

func NewSQLiteBackend(uow db.UnitOfWork) *SQLiteBackend {
	return &SQLiteBackend{uow: uow}
}

var (
	_ Backend = (*SQLiteBackend)(nil)
	_ Journal = (*SQLiteBackend)(nil)
)

func (b *SQLiteBackend) Load(ctx context.Context) (*State, error) {
	st := NewState()
	err := b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		history, err := repository.NewSQLiteFeedbackRepo(tx).ListRecent(ctx, MaxHistory)
		if err != nil {
			return err
		}
		if history != nil {
			st.History = history
		}
		mults, err := repository.NewSQLiteProductivityRepo(tx).List(ctx)
		if err != nil {
			return err
		}
		for _, m := range mults {
			st.Productivity[m.Key().String()] = m
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: loading feedback tables: %v", ErrStoreCorrupt, err)
	}
	return st, nil
}

// Save replaces the stored state with st.
func (b *SQLiteBackend) Save(ctx context.Context, st *State) error {
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		history := repository.NewSQLiteFeedbackRepo(tx)
		if err := history.DeleteAll(ctx); err != nil {
			return err
		}
		for _, rec := range st.History {
			if err := history.Append(ctx, rec); err != nil {
				return err
			}
		}

		prod := repository.NewSQLiteProductivityRepo(tx)
		if err := prod.DeleteAll(ctx); err != nil {
			return err
		}
		for _, m := range st.Multipliers() {
			if err := prod.Upsert(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *SQLiteBackend) AppendOutcome(ctx context.Context, rec domain.FeedbackRecord, keep int) error {
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteFeedbackRepo(tx)
		if err := repo.Append(ctx, rec); err != nil {
			return err
		}
		return repo.Trim(ctx, keep)
	})
}

func (b *SQLiteBackend) PutMultiplier(ctx context.Context, m domain.ProductivityMultiplier) error {
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProductivityRepo(tx).Upsert(ctx, m)
	})
}
