package domain

import (
	"strings"
	"time"
)

// FeedbackRecord is one accept/reject outcome for an issued quote.
type FeedbackRecord struct {
	QuoteID   string    `json:"quote_id"`
	Accepted  bool      `json:"accepted"`
	Timestamp time.Time `json:"ts"`
}

// ProductivityKey identifies a learned labor multiplier.
type ProductivityKey struct {
	City string
	Task TaskID
}

// NewProductivityKey normalizes the city so that "Paris" and " paris" share a key.
func NewProductivityKey(city string, task TaskID) ProductivityKey {
	return ProductivityKey{City: strings.ToLower(strings.TrimSpace(city)), Task: task}
}

// String renders the key as "city::task".
func (k ProductivityKey) String() string {
	return k.City + "::" + string(k.Task)
}

// ProductivityMultiplier is the learned realized/estimated labor ratio for a
// (city, task) pair.
type ProductivityMultiplier struct {
	City       string    `json:"city"`
	Task       TaskID    `json:"task"`
	Multiplier float64   `json:"multiplier"`
	Samples    int       `json:"n"`
	LastRatio  float64   `json:"last_ratio,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Key returns the lookup key of the multiplier.
func (p ProductivityMultiplier) Key() ProductivityKey {
	return NewProductivityKey(p.City, p.Task)
}
