package contract

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuoteRequest_SetsDefaults(t *testing.T) {
	req := NewQuoteRequest("4m2 bathroom")

	assert.Equal(t, "mid", req.Scenario)
	assert.Equal(t, "neutral", req.Seasonality)
	assert.Zero(t, req.Inflation)
	assert.Zero(t, req.Shortage)
	assert.False(t, req.AllScenarios())
	assert.NoError(t, req.Validate())
}

func TestQuoteRequest_Normalize(t *testing.T) {
	req := QuoteRequest{Transcript: "x", Scenario: " HIGH ", Seasonality: ""}
	req.Normalize()

	assert.Equal(t, "high", req.Scenario)
	assert.Equal(t, "neutral", req.Seasonality)
	assert.Equal(t, domain.Market{Seasonality: domain.SeasonNeutral}, req.Market())
}

func TestQuoteRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QuoteRequest)
		code   ErrorCode
	}{
		{"blank transcript", func(r *QuoteRequest) { r.Transcript = "  " }, ErrEmptyTranscript},
		{"huge transcript", func(r *QuoteRequest) { r.Transcript = strings.Repeat("a", MaxTranscriptBytes+1) }, ErrTranscriptTooLarge},
		{"unknown scenario", func(r *QuoteRequest) { r.Scenario = "premium" }, ErrInvalidScenario},
		{"unknown season", func(r *QuoteRequest) { r.Seasonality = "winter" }, ErrInvalidMarket},
		{"inflation too high", func(r *QuoteRequest) { r.Inflation = 1.5 }, ErrInvalidMarket},
		{"negative shortage", func(r *QuoteRequest) { r.Shortage = -0.1 }, ErrInvalidMarket},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewQuoteRequest("4m2 bathroom in Lyon")
			tt.mutate(&req)

			var reqErr *RequestError
			require.True(t, errors.As(req.Validate(), &reqErr))
			assert.Equal(t, tt.code, reqErr.Code)
		})
	}
}

func TestQuoteRequest_AllScenariosAccepted(t *testing.T) {
	req := NewQuoteRequest("bathroom")
	req.Scenario = ScenarioAll

	assert.NoError(t, req.Validate())
	assert.True(t, req.AllScenarios())
}

func TestFeedbackRequest_Validate(t *testing.T) {
	assert.NoError(t, FeedbackRequest{QuoteID: "Q-1", Accepted: true}.Validate())

	var reqErr *RequestError
	require.True(t, errors.As(FeedbackRequest{QuoteID: " "}.Validate(), &reqErr))
	assert.Equal(t, ErrMissingQuoteID, reqErr.Code)
	assert.Equal(t, "quote_id", reqErr.Field)
}

func TestProductivityRequest_Validate(t *testing.T) {
	ok := ProductivityRequest{City: "Paris", Task: "tiling_floor", RealizedHours: 6, EstimatedHours: 5}
	assert.NoError(t, ok.Validate())

	tests := []struct {
		name string
		req  ProductivityRequest
		code ErrorCode
	}{
		{"no city", ProductivityRequest{Task: "tiling_floor", RealizedHours: 1, EstimatedHours: 1}, ErrMissingTaskOrCity},
		{"no task", ProductivityRequest{City: "Lyon", RealizedHours: 1, EstimatedHours: 1}, ErrMissingTaskOrCity},
		{"zero realized", ProductivityRequest{City: "Lyon", Task: "x", EstimatedHours: 1}, ErrInvalidHours},
		{"negative estimate", ProductivityRequest{City: "Lyon", Task: "x", RealizedHours: 1, EstimatedHours: -2}, ErrInvalidHours},
		{"NaN realized", ProductivityRequest{City: "Lyon", Task: "x", RealizedHours: math.NaN(), EstimatedHours: 1}, ErrInvalidHours},
		{"infinite estimate", ProductivityRequest{City: "Lyon", Task: "x", RealizedHours: 1, EstimatedHours: math.Inf(1)}, ErrInvalidHours},
		{"ratio overflows", ProductivityRequest{City: "Lyon", Task: "x", RealizedHours: 1e300, EstimatedHours: 1e-10}, ErrInvalidHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reqErr *RequestError
			require.True(t, errors.As(tt.req.Validate(), &reqErr))
			assert.Equal(t, tt.code, reqErr.Code)
		})
	}
}
