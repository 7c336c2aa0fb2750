package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/feedback"
)

// QuoteLookup resolves a quote id. QuoteService satisfies it.
type QuoteLookup interface {
	Get(ctx context.Context, id string) (*domain.Quote, error)
}

// TaskChecker reports whether a task id is priced. *graph.Graph satisfies it.
type TaskChecker interface {
	Has(id domain.TaskID) bool
}

type feedbackService struct {
	store    *feedback.Store
	quotes   QuoteLookup
	tasks    TaskChecker
	observer UseCaseObserver
}

// NewFeedbackService records outcomes into store. When quotes is non-nil,
// outcomes are only accepted for quotes it knows about; when tasks is
// non-nil, realized hours are only accepted for tasks it knows about.
func NewFeedbackService(store *feedback.Store, quotes QuoteLookup, tasks TaskChecker, observers ...UseCaseObserver) FeedbackService {
	return &feedbackService{
		store:    store,
		quotes:   quotes,
		tasks:    tasks,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *feedbackService) RecordOutcome(ctx context.Context, req contract.FeedbackRequest) (rec domain.FeedbackRecord, err error) {
	startedAt := time.Now()
	fields := map[string]any{"quote_id": req.QuoteID, "accepted": req.Accepted}
	defer func() { observe(ctx, s.observer, "record-outcome", startedAt, fields, err) }()

	if err = req.Validate(); err != nil {
		return domain.FeedbackRecord{}, err
	}
	if s.quotes != nil {
		if _, err = s.quotes.Get(ctx, req.QuoteID); err != nil {
			return domain.FeedbackRecord{}, fmt.Errorf("recording outcome: %w", err)
		}
	}

	rec, err = s.store.RecordOutcome(ctx, req.QuoteID, req.Accepted)
	if err != nil {
		return domain.FeedbackRecord{}, err
	}
	fields["margin_nudge"] = s.store.MarginNudge()
	return rec, nil
}

func (s *feedbackService) RecordRealizedHours(ctx context.Context, req contract.ProductivityRequest) (m domain.ProductivityMultiplier, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"city":            req.City,
		"task":            string(req.Task),
		"realized_hours":  req.RealizedHours,
		"estimated_hours": req.EstimatedHours,
	}
	defer func() { observe(ctx, s.observer, "record-realized-hours", startedAt, fields, err) }()

	if err = req.Validate(); err != nil {
		return domain.ProductivityMultiplier{}, err
	}
	if s.tasks != nil && !s.tasks.Has(req.Task) {
		err = &domain.UnknownTaskError{Task: req.Task, Ref: "realized hours"}
		return domain.ProductivityMultiplier{}, err
	}
	m, err = s.store.RecordRealizedHours(ctx, req.City, req.Task, req.RealizedHours, req.EstimatedHours)
	if err != nil {
		return domain.ProductivityMultiplier{}, err
	}
	fields["multiplier"] = m.Multiplier
	fields["samples"] = m.Samples
	return m, nil
}

func (s *feedbackService) Summary(context.Context) contract.FeedbackSummary {
	history := s.store.History()
	window := history
	if len(window) > feedback.NudgeWindow {
		window = window[len(window)-feedback.NudgeWindow:]
	}
	var ratio float64
	if len(window) > 0 {
		accepted := 0
		for _, r := range window {
			if r.Accepted {
				accepted++
			}
		}
		ratio = float64(accepted) / float64(len(window))
	}
	return contract.FeedbackSummary{
		Records:      len(history),
		RecentAccept: ratio,
		MarginNudge:  feedback.MarginNudge(history),
		Degraded:     s.store.Degraded(),
		Multipliers:  s.store.Multipliers(),
	}
}
