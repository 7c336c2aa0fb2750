package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/renovo/internal/domain"
)

// ScenarioAll asks for the low, mid and high quotes in one request.
const ScenarioAll = "all"

// MaxTranscriptBytes bounds a transcript accepted for pricing.
const MaxTranscriptBytes = 64 << 10

type QuoteRequest struct {
	Transcript  string  `json:"transcript"`
	Scenario    string  `json:"scenario,omitempty"`
	Seasonality string  `json:"seasonality,omitempty"`
	Inflation   float64 `json:"inflation,omitempty"`
	Shortage    float64 `json:"shortage,omitempty"`
	ZoneName    string  `json:"zone_name,omitempty"`
}

func NewQuoteRequest(transcript string) QuoteRequest {
	return QuoteRequest{
		Transcript:  transcript,
		Scenario:    string(domain.ScenarioMid),
		Seasonality: string(domain.SeasonNeutral),
	}
}

// Normalize lower-cases the enum fields and fills empty ones with defaults.
func (r *QuoteRequest) Normalize() {
	r.Scenario = strings.ToLower(strings.TrimSpace(r.Scenario))
	if r.Scenario == "" {
		r.Scenario = string(domain.ScenarioMid)
	}
	r.Seasonality = strings.ToLower(strings.TrimSpace(r.Seasonality))
	if r.Seasonality == "" {
		r.Seasonality = string(domain.SeasonNeutral)
	}
}

func (r QuoteRequest) Validate() error {
	if strings.TrimSpace(r.Transcript) == "" {
		return invalid(ErrEmptyTranscript, "transcript", "transcript is required")
	}
	if len(r.Transcript) > MaxTranscriptBytes {
		return invalid(ErrTranscriptTooLarge, "transcript",
			fmt.Sprintf("transcript is %d bytes, limit is %d", len(r.Transcript), MaxTranscriptBytes))
	}
	if r.Scenario != ScenarioAll && !domain.ValidScenarios[r.Scenario] {
		return invalid(ErrInvalidScenario, "scenario",
			fmt.Sprintf("scenario %q must be low, mid, high or all", r.Scenario))
	}
	if !domain.ValidSeasonalities[r.Seasonality] {
		return invalid(ErrInvalidMarket, "seasonality",
			fmt.Sprintf("seasonality %q must be neutral, peak or off", r.Seasonality))
	}
	if r.Inflation < -0.5 || r.Inflation > 1 {
		return invalid(ErrInvalidMarket, "inflation", "inflation must be within [-0.5, 1]")
	}
	if r.Shortage < 0 || r.Shortage > 1 {
		return invalid(ErrInvalidMarket, "shortage", "shortage must be within [0, 1]")
	}
	return nil
}

// Market returns the market conditions carried by the request.
func (r QuoteRequest) Market() domain.Market {
	return domain.Market{
		Inflation:   r.Inflation,
		Seasonality: domain.Seasonality(r.Seasonality),
		Shortage:    r.Shortage,
	}
}

// AllScenarios reports whether the request asks for every scenario.
func (r QuoteRequest) AllScenarios() bool { return r.Scenario == ScenarioAll }

// QuoteResponse carries one quote per requested scenario, low to high.
type QuoteResponse struct {
	Quotes []*domain.Quote `json:"quotes"`
}

// HistoryEntry is one stored quote with the change of its total against the
// quote issued just before it.
type HistoryEntry struct {
	QuoteID    string          `json:"quote_id"`
	CreatedUTC time.Time       `json:"created_utc"`
	City       string          `json:"city"`
	AreaM2     float64         `json:"area_m2"`
	Scenario   domain.Scenario `json:"scenario"`
	TotalPrice float64         `json:"total_price"`
	Confidence float64         `json:"confidence"`
	Trust      float64         `json:"trust"`
	ChangePct  *float64        `json:"change_pct"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}
