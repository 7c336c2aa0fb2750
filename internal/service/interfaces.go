package service

import (
	"context"

	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/alexanderramin/renovo/internal/domain"
)

type QuoteService interface {
	// Generate prices a transcript. Scenario "all" yields low, mid and high
	// quotes in that order; otherwise exactly one quote is returned.
	Generate(ctx context.Context, req contract.QuoteRequest) (*contract.QuoteResponse, error)
	Get(ctx context.Context, id string) (*domain.Quote, error)
	// History lists stored quotes, newest first, with the change of each
	// total against the quote issued before it.
	History(ctx context.Context, limit int) (*contract.HistoryResponse, error)
	// InspectGraph describes the pricing graph. A non-empty transcript is
	// also resolved against it.
	InspectGraph(ctx context.Context, transcript string) (*contract.GraphReport, error)
}

type FeedbackService interface {
	RecordOutcome(ctx context.Context, req contract.FeedbackRequest) (domain.FeedbackRecord, error)
	RecordRealizedHours(ctx context.Context, req contract.ProductivityRequest) (domain.ProductivityMultiplier, error)
	Summary(ctx context.Context) contract.FeedbackSummary
}
