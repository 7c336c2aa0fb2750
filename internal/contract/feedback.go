package contract

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/renovo/internal/domain"
)

type FeedbackRequest struct {
	QuoteID  string `json:"quote_id"`
	Accepted bool   `json:"accepted"`
}

func (r FeedbackRequest) Validate() error {
	if strings.TrimSpace(r.QuoteID) == "" {
		return invalid(ErrMissingQuoteID, "quote_id", "quote_id is required")
	}
	return nil
}

// ProductivityRequest reports the hours a finished task actually took.
type ProductivityRequest struct {
	City           string        `json:"city"`
	Task           domain.TaskID `json:"task"`
	RealizedHours  float64       `json:"realized_hours"`
	EstimatedHours float64       `json:"estimated_hours"`
}

func (r ProductivityRequest) Validate() error {
	if strings.TrimSpace(r.City) == "" || strings.TrimSpace(string(r.Task)) == "" {
		return invalid(ErrMissingTaskOrCity, "task", "city and task are required")
	}
	if !isFinite(r.RealizedHours) || r.RealizedHours <= 0 {
		return invalid(ErrInvalidHours, "realized_hours",
			fmt.Sprintf("realized_hours must be > 0, got %g", r.RealizedHours))
	}
	if !isFinite(r.EstimatedHours) || r.EstimatedHours <= 0 {
		return invalid(ErrInvalidHours, "estimated_hours",
			fmt.Sprintf("estimated_hours must be > 0, got %g", r.EstimatedHours))
	}
	if !isFinite(r.RealizedHours / r.EstimatedHours) {
		return invalid(ErrInvalidHours, "realized_hours",
			fmt.Sprintf("realized/estimated ratio overflows for %g/%g", r.RealizedHours, r.EstimatedHours))
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FeedbackSummary describes the learned state behind future quotes.
type FeedbackSummary struct {
	Records      int                             `json:"records"`
	RecentAccept float64                         `json:"recent_accept_ratio"`
	MarginNudge  float64                         `json:"margin_nudge"`
	Degraded     bool                            `json:"degraded"`
	Multipliers  []domain.ProductivityMultiplier `json:"multipliers"`
}
