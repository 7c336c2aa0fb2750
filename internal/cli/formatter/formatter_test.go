package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func sampleQuote(scenario domain.Scenario, total float64) *domain.Quote {
	return &domain.Quote{
		QuoteID:    "Q-20261019-ab12cd",
		CreatedUTC: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
		System:     "renovo",
		Currency:   "EUR",
		Zones: []domain.Zone{{
			ZoneName:  "bathroom",
			AreaM2:    4,
			City:      "Paris",
			CityIndex: 1.2,
			Tasks: []domain.PricedTask{{
				Task:             "tiling_floor",
				Quantity:         4,
				UnitMaterialDesc: domain.MaterialDesc{Unit: "m2", UnitCost: 31.47},
				Labor:            domain.LaborCost{Hours: 5.76, Cost: 276.48},
				Materials:        domain.MaterialCost{Cost: 124.63},
				Pricing: domain.TaskPricing{
					Margin: 0.162, NetPrice: 471.97, VATRate: 0.10, VATAmount: 47.20, TotalPrice: 519.17,
				},
				EstimatedDurationDays: 1,
			}},
		}},
		Totals: domain.Totals{NetPrice: total / 1.1, VATAmount: total - total/1.1, TotalPrice: total},
		Assumptions: domain.Assumptions{
			City:            "Paris",
			Scenario:        scenario,
			BudgetConscious: true,
			Notes:           []string{"area defaulted to 4 m2"},
		},
		Confidence: domain.Score{Score: 0.5, Flags: []string{"area_defaulted"}},
		Trust:      domain.Score{Score: 0.85, Flags: []string{"city_unrecognized"}},
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in       float64
		currency string
		want     string
	}{
		{0, "", "0.00"},
		{519.168, "EUR", "519.17 €"},
		{12345.6, "EUR", "12 345.60 €"},
		{1234567.891, "USD", "1 234 567.89 USD"},
		{-1500, "", "-1 500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(tt.in, tt.currency))
		})
	}
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Oct 12, 2026", HumanTimestamp(now.Add(-7*24*time.Hour), now))
}

func TestRenderScoreBar(t *testing.T) {
	tests := []struct {
		name   string
		score  float64
		filled int
		label  string
	}{
		{"zero", 0, 0, "0.00"},
		{"half", 0.5, 5, "0.50"},
		{"full", 1, 10, "1.00"},
		{"clamps high", 1.7, 10, "1.00"},
		{"clamps low", -0.2, 0, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderScoreBar(tt.score, 10))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, 10-tt.filled, strings.Count(got, emptyBlock))
			assert.True(t, strings.HasSuffix(got, tt.label))
		})
	}
}

func TestRenderTable_RightAlignsNumericColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"TASK", "TOTAL"}, [][]string{
		{"tiling_floor", "519.17"},
		{"painting_walls", "9.50"},
	}, 1))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[2], "519.17"))
	assert.True(t, strings.HasSuffix(lines[3], "  9.50"))
	assert.Equal(t, len([]rune(lines[2])), len([]rune(lines[3])))
}

func TestFormatQuote(t *testing.T) {
	out := stripANSI(FormatQuote(sampleQuote(domain.ScenarioMid, 519.17)))

	assert.Contains(t, out, "Q-20261019-ab12cd")
	assert.Contains(t, out, "tiling_floor")
	assert.Contains(t, out, "4.00 m2")
	assert.Contains(t, out, "519.17 €")
	assert.Contains(t, out, "10.0%")
	assert.Contains(t, out, "city_unrecognized")
	assert.Contains(t, out, "budget conscious")
	assert.Contains(t, out, "NOTE: area defaulted to 4 m2")
}

func TestFormatScenarios_ComparisonOnlyForSeveral(t *testing.T) {
	one := stripANSI(FormatScenarios([]*domain.Quote{sampleQuote(domain.ScenarioMid, 500)}))
	assert.NotContains(t, one, "SCENARIOS")

	all := stripANSI(FormatScenarios([]*domain.Quote{
		sampleQuote(domain.ScenarioLow, 450),
		sampleQuote(domain.ScenarioMid, 500),
		sampleQuote(domain.ScenarioHigh, 575),
	}))
	assert.Contains(t, all, "SCENARIOS")
	assert.Contains(t, all, "575.00 €")
	assert.Less(t, strings.LastIndex(all, "low"), strings.LastIndex(all, "high"))
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	up := 4.5

	empty := stripANSI(FormatHistory(&contract.HistoryResponse{}, now))
	assert.Contains(t, empty, "No quotes yet")

	out := stripANSI(FormatHistory(&contract.HistoryResponse{Entries: []contract.HistoryEntry{
		{QuoteID: "Q-2", CreatedUTC: now.Add(-2 * time.Hour), City: "Lyon", AreaM2: 6, Scenario: domain.ScenarioMid, TotalPrice: 2090, Confidence: 0.9, Trust: 1, ChangePct: &up},
		{QuoteID: "Q-1", CreatedUTC: now.Add(-3 * time.Hour), City: "Lyon", AreaM2: 6, Scenario: domain.ScenarioMid, TotalPrice: 2000, Confidence: 0.9, Trust: 1},
	}}, now))
	assert.Contains(t, out, "2 090.00 €")
	assert.Contains(t, out, "▲ +4.50%")
	assert.Contains(t, out, "--")
	assert.Contains(t, out, "2 quote(s)")
}

func TestFormatGraph(t *testing.T) {
	out := stripANSI(FormatGraph(&contract.GraphReport{
		Nodes: []contract.GraphNode{
			{ID: "demolition_floor", Category: domain.CategoryDemolition},
			{ID: "tiling_floor", Category: domain.CategoryTiling, RequiredSignals: []domain.SignalName{domain.SignalSubstrateExposed}},
		},
		Edges: []contract.GraphEdge{
			{From: "demolition_floor", To: "tiling_floor", Kind: "implied", Rule: "substrate not exposed"},
		},
		Detected: []domain.TaskID{"tiling_floor"},
		Resolved: []domain.TaskID{"demolition_floor", "tiling_floor"},
	}))

	assert.Contains(t, out, "demolition_floor ╌╌▶ tiling_floor when substrate not exposed")
	assert.Contains(t, out, "demolition_floor → tiling_floor")
}

func TestFormatFeedbackSummary(t *testing.T) {
	out := stripANSI(FormatFeedbackSummary(contract.FeedbackSummary{
		Records:      5,
		RecentAccept: 0.8,
		MarginNudge:  0.02,
		Degraded:     true,
		Multipliers: []domain.ProductivityMultiplier{
			{City: "paris", Task: "tiling_floor", Multiplier: 1.06, Samples: 1},
		},
	}))

	assert.Contains(t, out, "80.0%")
	assert.Contains(t, out, "+0.02")
	assert.Contains(t, out, "unreadable")
	assert.Contains(t, out, "1.060")
}
