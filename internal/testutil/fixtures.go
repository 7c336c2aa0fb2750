package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the clock used by fixtures.
var FixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// NewQuoteID returns a unique quote id in the issued format.
func NewQuoteID() string {
	return fmt.Sprintf("Q-%s-%s", FixedNow.Format("20060102150405"), uuid.NewString()[:8])
}

// Quote options
type QuoteOption func(*domain.Quote)

func WithCity(city string, index float64) QuoteOption {
	return func(q *domain.Quote) {
		q.Zones[0].City = city
		q.Zones[0].CityIndex = index
		q.Assumptions.City = city
	}
}

func WithTotal(net, vat float64) QuoteOption {
	return func(q *domain.Quote) {
		q.Totals = domain.Totals{NetPrice: net, VATAmount: vat, TotalPrice: net + vat}
	}
}

func WithCreated(t time.Time) QuoteOption {
	return func(q *domain.Quote) {
		q.CreatedUTC = t
	}
}

func WithScenario(s domain.Scenario) QuoteOption {
	return func(q *domain.Quote) {
		q.Assumptions.Scenario = s
	}
}

// NewTestQuote builds a one-zone, one-task quote.
func NewTestQuote(opts ...QuoteOption) *domain.Quote {
	area := 4.0
	q := &domain.Quote{
		QuoteID:    NewQuoteID(),
		CreatedUTC: FixedNow,
		System:     "renovo test",
		Currency:   "EUR",
		Zones: []domain.Zone{{
			ZoneName:  "Bathroom",
			AreaM2:    area,
			City:      "Marseille",
			CityIndex: 0.95,
			Tasks: []domain.PricedTask{{
				Task:     "tiling_floor",
				Quantity: area,
				UnitMaterialDesc: domain.MaterialDesc{
					Description: "Standard ceramic floor tile", Unit: "m2", UnitCost: 32, WastageFraction: 0.1,
				},
				Labor:                 domain.LaborCost{Hours: 4.56, Cost: 218.88},
				Materials:             domain.MaterialCost{Cost: 140.8},
				Pricing:               domain.TaskPricing{Margin: 0.18, NetPrice: 424.43, VATRate: 0.1, VATAmount: 42.44, TotalPrice: 466.87},
				EstimatedDurationDays: 1,
			}},
		}},
		Totals:      domain.Totals{NetPrice: 424.43, VATAmount: 42.44, TotalPrice: 466.87},
		Assumptions: domain.Assumptions{TranscriptAreaM2: &area, City: "Marseille", Scenario: domain.ScenarioMid},
		Confidence:  domain.Score{Score: 0.9, Flags: []string{}},
		Trust:       domain.Score{Score: 1, Flags: []string{}},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// NewOutcome builds a feedback record offset minutes after FixedNow.
func NewOutcome(accepted bool, offsetMin int) domain.FeedbackRecord {
	return domain.FeedbackRecord{
		QuoteID:   NewQuoteID(),
		Accepted:  accepted,
		Timestamp: FixedNow.Add(time.Duration(offsetMin) * time.Minute),
	}
}

// Outcomes builds a history from a pattern such as "AARRA".
func Outcomes(pattern string) []domain.FeedbackRecord {
	out := make([]domain.FeedbackRecord, 0, len(pattern))
	for i, c := range pattern {
		out = append(out, NewOutcome(c == 'A', i))
	}
	return out
}
