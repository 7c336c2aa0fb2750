package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/renovo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBackend_StoreRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	s := NewStore(NewSQLiteBackend(testutil.NewTestUoW(database)), WithClock(fixedClock))
	require.NoError(t, s.Load(ctx))
	assert.False(t, s.Degraded())

	for _, accepted := range []bool{true, true, true, true, true} {
		_, err := s.RecordOutcome(ctx, testutil.NewQuoteID(), accepted)
		require.NoError(t, err)
	}
	_, err := s.RecordRealizedHours(ctx, "Lyon", "toilet_replace", 2.7, 3)
	require.NoError(t, err)

	reopened := NewStore(NewSQLiteBackend(testutil.NewTestUoW(database)))
	require.NoError(t, reopened.Load(ctx))
	assert.Len(t, reopened.History(), 5)
	assert.InDelta(t, NudgeStep, reopened.MarginNudge(), 1e-12)
	// 0.3*0.9 + 0.7*1.0 = 0.97
	assert.InDelta(t, 0.97, reopened.Productivity("lyon", "toilet_replace"), 1e-12)
}

func TestSQLiteBackend_SaveReplacesState(t *testing.T) {
	database := testutil.NewTestDB(t)
	backend := NewSQLiteBackend(testutil.NewTestUoW(database))
	ctx := context.Background()

	st := NewState()
	st.History = testutil.Outcomes("ARA")
	require.NoError(t, backend.Save(ctx, st))

	st.History = st.History[2:]
	require.NoError(t, backend.Save(ctx, st))

	loaded, err := backend.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.History, 1)
	assert.Equal(t, st.History[0].QuoteID, loaded.History[0].QuoteID)
}

func TestSQLiteBackend_SaveRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	good := NewSQLiteBackend(testutil.NewTestUoW(database))
	st := NewState()
	st.History = testutil.Outcomes("AAR")
	require.NoError(t, good.Save(ctx, st))

	// Exec 1 clears history, exec 2 is the first re-insert.
	failing := NewSQLiteBackend(&testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("injected")})
	replacement := NewState()
	replacement.History = testutil.Outcomes("RRRR")
	assert.ErrorContains(t, failing.Save(ctx, replacement), "injected")

	loaded, err := good.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.History, 3, "failed save must not clear history")
	assert.Equal(t, st.History[0].QuoteID, loaded.History[0].QuoteID)
}
