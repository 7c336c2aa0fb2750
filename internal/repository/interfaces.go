package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/renovo/internal/domain"
)

// QuoteSummary is the list view of a stored quote.
type QuoteSummary struct {
	ID         string
	CreatedAt  time.Time
	City       string
	AreaM2     float64
	Scenario   domain.Scenario
	NetPrice   float64
	TotalPrice float64
	Confidence float64
	Trust      float64
}

type QuoteRepo interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	ListRecent(ctx context.Context, limit int) ([]QuoteSummary, error)
}

type FeedbackRepo interface {
	Append(ctx context.Context, rec domain.FeedbackRecord) error
	// ListRecent returns up to limit records, oldest first.
	ListRecent(ctx context.Context, limit int) ([]domain.FeedbackRecord, error)
	Trim(ctx context.Context, keep int) error
	DeleteAll(ctx context.Context) error
}

type ProductivityRepo interface {
	Get(ctx context.Context, key domain.ProductivityKey) (*domain.ProductivityMultiplier, error)
	Upsert(ctx context.Context, m domain.ProductivityMultiplier) error
	List(ctx context.Context) ([]domain.ProductivityMultiplier, error)
	DeleteAll(ctx context.Context) error
}
