package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/renovo/internal/catalog"
	"github.com/alexanderramin/renovo/internal/feedback"
	"github.com/alexanderramin/renovo/internal/graph"
	"github.com/alexanderramin/renovo/internal/pricing"
	"github.com/alexanderramin/renovo/internal/repository"
	"github.com/alexanderramin/renovo/internal/testutil"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	quotes   QuoteService
	feedback FeedbackService
	store    *feedback.Store
	repo     *repository.SQLiteQuoteRepo
	engine   *pricing.Engine
	events   *recordingObserver
}

// steppingClock advances one minute per call so stored quotes sort by
// creation order.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	next := testutil.FixedNow
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func setupServices(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	store := feedback.NewStore(feedback.NewSQLiteBackend(uow), feedback.WithClock(steppingClock()))
	require.NoError(t, store.Load(context.Background()))

	g, err := graph.Bathroom()
	require.NoError(t, err)
	engine, err := pricing.NewEngine(g, catalog.Default(),
		pricing.WithFeedback(store),
		pricing.WithClock(steppingClock()),
	)
	require.NoError(t, err)

	events := &recordingObserver{}
	repo := repository.NewSQLiteQuoteRepo(database)
	quotes, err := NewQuoteService(engine, repo, 8, events)
	require.NoError(t, err)

	return &fixture{
		quotes:   quotes,
		feedback: NewFeedbackService(store, quotes, g, events),
		store:    store,
		repo:     repo,
		engine:   engine,
		events:   events,
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
