package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/alexanderramin/renovo/internal/catalog"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/feedback"
	"github.com/alexanderramin/renovo/internal/graph"
	"github.com/alexanderramin/renovo/internal/rules"
	"github.com/alexanderramin/renovo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parisTranscript = "4m² bathroom in Paris, retile floor, budget conscious"

type stubFeedback struct {
	nudge    float64
	prod     map[domain.TaskID]float64
	degraded bool
}

func (s stubFeedback) MarginNudge() float64 { return s.nudge }
func (s stubFeedback) Productivity(_ string, task domain.TaskID) float64 {
	if m, ok := s.prod[task]; ok {
		return m
	}
	return 1
}
func (s stubFeedback) Degraded() bool { return s.degraded }

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	g, err := graph.Bathroom()
	require.NoError(t, err)
	base := []Option{
		WithClock(func() time.Time { return testutil.FixedNow }),
		WithIDGenerator(func(time.Time) string { return "Q-test" }),
	}
	e, err := NewEngine(g, catalog.Default(), append(base, opts...)...)
	require.NoError(t, err)
	return e
}

func taskIDs(q *domain.Quote) []domain.TaskID {
	var ids []domain.TaskID
	for _, tk := range q.AllTasks() {
		ids = append(ids, tk.Task)
	}
	return ids
}

func TestPriceQuote_ParisRetile(t *testing.T) {
	q, err := newEngine(t).PriceTranscript(parisTranscript)
	require.NoError(t, err)

	assert.Equal(t, []domain.TaskID{graph.DemolitionFloor, graph.TilingFloor}, taskIDs(q))

	zone := q.Zones[0]
	assert.Equal(t, "Paris", zone.City)
	assert.Equal(t, 1.20, zone.CityIndex)
	assert.Equal(t, 4.0, zone.AreaM2)

	for _, tk := range zone.Tasks {
		assert.LessOrEqual(t, tk.Pricing.Margin, 0.18, tk.Task)
		assert.InDelta(t, 0.162, tk.Pricing.Margin, 1e-12, tk.Task)
	}

	assert.GreaterOrEqual(t, q.Confidence.Score, 0.95)
	assert.Empty(t, q.Confidence.Flags)
	assert.Equal(t, 1.0, q.Trust.Score)
	assert.Empty(t, q.Trust.Flags)

	assert.True(t, q.Assumptions.BudgetConscious)
	require.NotNil(t, q.Assumptions.TranscriptAreaM2)
	assert.Equal(t, 4.0, *q.Assumptions.TranscriptAreaM2)
	assert.False(t, q.Assumptions.DefaultsApplied)
	assert.Equal(t, "Q-test", q.QuoteID)
	assert.Equal(t, Currency, q.Currency)
}

func TestPriceQuote_ParisRetileFigures(t *testing.T) {
	q, err := newEngine(t).PriceTranscript(parisTranscript)
	require.NoError(t, err)
	demo, tile := q.Zones[0].Tasks[0], q.Zones[0].Tasks[1]

	// demolition: 4 m2 x 4.00, labor 0.8 h/m2 x 4 x 1.20 = 3.84 h
	assert.Equal(t, 16.0, demo.Materials.Cost)
	assert.Equal(t, 3.84, demo.Labor.Hours)
	assert.Equal(t, 184.32, demo.Labor.Cost)
	assert.Equal(t, 232.77, demo.Pricing.NetPrice)
	assert.Equal(t, 0.10, demo.Pricing.VATRate)
	assert.Equal(t, 1, demo.EstimatedDurationDays)

	// tile: 0.7 x 32 + 0.3 x 30.24 = 31.472/m2, +10% wastage, budget spec x0.9
	assert.Equal(t, 31.47, tile.UnitMaterialDesc.UnitCost)
	assert.Equal(t, 124.63, tile.Materials.Cost)
	assert.Equal(t, 5.76, tile.Labor.Hours)
	assert.Equal(t, 276.48, tile.Labor.Cost)

	var net float64
	for _, tk := range q.Zones[0].Tasks {
		assert.InDelta(t, tk.Pricing.NetPrice+tk.Pricing.VATAmount, tk.Pricing.TotalPrice, 0.011)
		net += tk.Pricing.NetPrice
	}
	assert.InDelta(t, net, q.Totals.NetPrice, 0.011)
	assert.InDelta(t, q.Totals.NetPrice+q.Totals.VATAmount, q.Totals.TotalPrice, 0.011)
}

func TestPriceQuote_JSONSchemaKeys(t *testing.T) {
	q, err := newEngine(t).PriceTranscript(parisTranscript)
	require.NoError(t, err)

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &top))
	assert.Equal(t, []string{
		"assumptions", "confidence", "created_utc", "currency", "quote_id", "system", "totals", "trust", "zones",
	}, sortedKeys(top))

	var doc struct {
		Zones []struct {
			Tasks []map[string]json.RawMessage `json:"tasks"`
		} `json:"zones"`
		Totals     map[string]json.RawMessage `json:"totals"`
		Confidence map[string]json.RawMessage `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, []string{
		"estimated_duration_days", "labor", "materials", "pricing", "quantity", "task", "unit_material_desc",
	}, sortedKeys(doc.Zones[0].Tasks[0]))
	assert.Equal(t, []string{"net_price", "total_price", "vat_amount"}, sortedKeys(doc.Totals))
	assert.Equal(t, []string{"flags", "score"}, sortedKeys(doc.Confidence))

	var zones []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(top["zones"], &zones))
	assert.Equal(t, []string{"area_m2", "city", "city_index", "tasks", "zone_name"}, sortedKeys(zones[0]))

	var pricing map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc.Zones[0].Tasks[0]["pricing"], &pricing))
	assert.Equal(t, []string{"margin", "net_price", "total_price", "vat_amount", "vat_rate"}, sortedKeys(pricing))
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestPriceQuote_VATByCategory(t *testing.T) {
	q, err := newEngine(t).PriceTranscript(
		"6 m2 bathroom in Lyon: remove the old tiles, new shower, waterproofing, floor tiles, wall tiles, " +
			"replace the toilet, install a vanity, paint the walls")
	require.NoError(t, err)

	want := map[domain.TaskID]float64{
		graph.DemolitionFloor: 0.10,
		graph.DemolitionWalls: 0.10,
		graph.PlumbingShower:  0.20,
		graph.Waterproofing:   0.10,
		graph.TilingFloor:     0.10,
		graph.TilingWalls:     0.10,
		graph.ToiletReplace:   0.20,
		graph.VanityInstall:   0.20,
		graph.PaintingWalls:   0.10,
	}
	require.Len(t, q.AllTasks(), len(want))
	for _, tk := range q.AllTasks() {
		assert.Equal(t, want[tk.Task], tk.Pricing.VATRate, tk.Task)
		assert.InDelta(t, tk.Pricing.NetPrice*tk.Pricing.VATRate, tk.Pricing.VATAmount, 0.011, tk.Task)
	}
}

func TestPriceQuote_Property_AreaMonotonic(t *testing.T) {
	e := newEngine(t)
	for _, city := range []string{"Paris", "Lyon", "Marseille", "Toulouse"} {
		prev := -1.0
		for area := 1.0; area <= 40; area += 0.5 {
			text := fmt.Sprintf("%.1f m2 bathroom located in %s, floor tiles, paint the walls, new shower, wall tiles, replace the toilet", area, city)
			q, err := e.PriceTranscript(text)
			require.NoError(t, err)
			require.GreaterOrEqual(t, q.Totals.NetPrice, prev, "%s: net price dropped at %.1f m2", city, area)
			prev = q.Totals.NetPrice
		}
	}
}

func TestPriceQuote_Property_MarginBoundsUnderRandomFeedback(t *testing.T) {
	g, err := graph.Bathroom()
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(99))
	transcripts := []string{
		parisTranscript,
		"5 m2 bathroom in Lyon, new shower, replace the toilet, paint the walls",
		"tight budget, install a vanity, wall tiles",
	}
	seasons := []domain.Seasonality{domain.SeasonNeutral, domain.SeasonPeak, domain.SeasonOff}

	for trial := 0; trial < 1000; trial++ {
		history := make([]domain.FeedbackRecord, rng.Intn(15))
		for i := range history {
			accepted := rng.Intn(3) > 0
			if trial%2 == 1 {
				accepted = !accepted
			}
			history[i] = testutil.NewOutcome(accepted, i)
		}
		fb := stubFeedback{nudge: feedback.MarginNudge(history)}
		e, err := NewEngine(g, catalog.Default(), WithFeedback(fb))
		require.NoError(t, err)

		q, err := e.PriceQuote(Request{
			Transcript: transcripts[rng.Intn(len(transcripts))],
			Scenario:   rules.AllScenarios[rng.Intn(3)],
			Market:     domain.Market{Seasonality: seasons[rng.Intn(3)], Inflation: rng.Float64() * 0.1},
		})
		require.NoError(t, err)
		for _, tk := range q.AllTasks() {
			require.GreaterOrEqual(t, tk.Pricing.Margin, 0.12, "trial %d", trial)
			require.LessOrEqual(t, tk.Pricing.Margin, 0.30, "trial %d", trial)
		}
		assert.NotContains(t, q.Trust.Flags, FlagMarginOutOfPolicy)
	}
}

func TestPriceQuote_MissingSignalsDefaultAndFlag(t *testing.T) {
	q, err := newEngine(t).PriceTranscript("client called about the bathroom")
	require.NoError(t, err)

	assert.Equal(t, []domain.TaskID{graph.DemolitionFloor, graph.TilingFloor, graph.PaintingWalls}, taskIDs(q))
	assert.Equal(t, "Marseille", q.Zones[0].City)
	assert.Equal(t, 4.0, q.Zones[0].AreaM2)
	assert.Nil(t, q.Assumptions.TranscriptAreaM2)
	assert.True(t, q.Assumptions.DefaultsApplied)
	assert.Contains(t, q.Assumptions.DefaultedSignals, domain.SignalAreaM2)
	assert.Contains(t, q.Assumptions.DefaultedSignals, domain.SignalCity)
	assert.Len(t, q.Assumptions.Notes, 4)
	assert.Contains(t, q.Assumptions.Notes,
		"area_m2 was defaulted; estimates for demolition_floor, tiling_floor, painting_walls depend on it")

	assert.ElementsMatch(t, []string{FlagAreaDefaulted, FlagCityDefaulted, FlagNoTasksDetected}, q.Confidence.Flags)
	assert.Equal(t, 0.25, q.Confidence.Score)
	assert.Contains(t, q.Trust.Flags, FlagCityUnrecognized)
}

func TestPriceQuote_DetectedAreaAddsNoInputNote(t *testing.T) {
	q, err := newEngine(t).PriceTranscript(parisTranscript)
	require.NoError(t, err)
	for _, n := range q.Assumptions.Notes {
		assert.NotContains(t, n, "estimates for")
	}
}

func TestPriceQuote_ExposedSubstrateSkipsDemolition(t *testing.T) {
	q, err := newEngine(t).PriceTranscript("5 m2, Lyon, the floor is already stripped, lay new ceramic floor tiles")
	require.NoError(t, err)
	assert.Equal(t, []domain.TaskID{graph.TilingFloor}, taskIDs(q))
	for _, a := range q.Assumptions.Adjustments {
		assert.NotContains(t, a, "implied")
	}
}

func TestPriceQuote_ProductivityFeedbackScalesHours(t *testing.T) {
	plain, err := newEngine(t).PriceTranscript(parisTranscript)
	require.NoError(t, err)

	fb := stubFeedback{prod: map[domain.TaskID]float64{graph.TilingFloor: 1.15}}
	learned, err := newEngine(t, WithFeedback(fb)).PriceTranscript(parisTranscript)
	require.NoError(t, err)

	assert.InDelta(t, plain.Zones[0].Tasks[1].Labor.Hours*1.15, learned.Zones[0].Tasks[1].Labor.Hours, 0.011)
	assert.Equal(t, plain.Zones[0].Tasks[0].Labor.Hours, learned.Zones[0].Tasks[0].Labor.Hours)
	assert.Greater(t, learned.Totals.NetPrice, plain.Totals.NetPrice)
}

func TestPriceQuote_FeedbackNudgeRecorded(t *testing.T) {
	q, err := newEngine(t, WithFeedback(stubFeedback{nudge: -0.02})).PriceTranscript(parisTranscript)
	require.NoError(t, err)

	assert.InDelta(t, 0.142, q.Zones[0].Tasks[0].Pricing.Margin, 1e-12)
	assert.Equal(t, -0.02, q.Assumptions.FeedbackNudge)
	assert.Contains(t, q.Assumptions.Adjustments, "feedback margin nudge -0.020")
}

func TestPriceQuote_DegradedFeedbackLowersTrust(t *testing.T) {
	q, err := newEngine(t, WithFeedback(stubFeedback{degraded: true})).PriceTranscript(parisTranscript)
	require.NoError(t, err)

	assert.Equal(t, []string{FlagFeedbackStateUnreadable}, q.Trust.Flags)
	assert.Equal(t, 0.90, q.Trust.Score)
}

func TestPriceScenarios_Ordered(t *testing.T) {
	quotes, err := newEngine(t).PriceScenarios(Request{Transcript: parisTranscript})
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	assert.Equal(t, domain.ScenarioLow, quotes[0].Assumptions.Scenario)
	assert.Equal(t, domain.ScenarioHigh, quotes[2].Assumptions.Scenario)
	assert.Less(t, quotes[0].Totals.TotalPrice, quotes[1].Totals.TotalPrice)
	assert.Less(t, quotes[1].Totals.TotalPrice, quotes[2].Totals.TotalPrice)
}

func TestPriceQuote_RejectsBadRequest(t *testing.T) {
	e := newEngine(t)

	_, err := e.PriceQuote(Request{Transcript: parisTranscript, Scenario: "premium"})
	assert.ErrorContains(t, err, "invalid scenario")

	_, err = e.PriceQuote(Request{Transcript: parisTranscript, Market: domain.Market{Shortage: 3}})
	assert.ErrorContains(t, err, "shortage")
}

func TestPriceQuote_MarketRaisesPrice(t *testing.T) {
	e := newEngine(t)
	base, err := e.PriceQuote(Request{Transcript: parisTranscript})
	require.NoError(t, err)
	peak, err := e.PriceQuote(Request{
		Transcript: parisTranscript,
		Market:     domain.Market{Inflation: 0.05, Seasonality: domain.SeasonPeak, Shortage: 0.5},
	})
	require.NoError(t, err)

	assert.Greater(t, peak.Totals.TotalPrice, base.Totals.TotalPrice)
	assert.InDelta(t, 0.172, peak.Zones[0].Tasks[0].Pricing.Margin, 1e-12)
}

func TestPriceQuote_CycleAborts(t *testing.T) {
	g, err := graph.NewGraph([]domain.TaskNode{
		{ID: graph.TilingFloor, Category: domain.CategoryTiling, Prerequisites: []domain.TaskID{graph.PaintingWalls}},
		{ID: graph.PaintingWalls, Category: domain.CategoryPainting, Prerequisites: []domain.TaskID{graph.TilingFloor}},
	})
	require.NoError(t, err)
	e, err := NewEngine(g, catalog.Default())
	require.NoError(t, err)

	_, err = e.PriceTranscript(parisTranscript)
	var cycle *domain.GraphCycleError
	require.True(t, errors.As(err, &cycle))
	assert.True(t, cycle.Involves(graph.TilingFloor))
	assert.True(t, cycle.Involves(graph.PaintingWalls))
}

func TestNewEngine_CatalogMustCoverGraph(t *testing.T) {
	g, err := graph.Bathroom()
	require.NoError(t, err)
	partial, err := catalog.New(catalog.DefaultEntries()[:3])
	require.NoError(t, err)

	_, err = NewEngine(g, partial)
	var unknown *domain.UnknownTaskError
	require.True(t, errors.As(err, &unknown))
}

func TestNewEngine_RejectsBadPolicy(t *testing.T) {
	g, err := graph.Bathroom()
	require.NoError(t, err)
	bad := rules.DefaultMarginPolicy()
	bad.Baseline = 0.9

	_, err = NewEngine(g, catalog.Default(), WithPolicy(bad))
	assert.ErrorContains(t, err, "baseline")
}

func TestApplyFeedbackTweaks(t *testing.T) {
	assert.Equal(t, 0.18, newEngine(t).ApplyFeedbackTweaks(0.18))
	assert.InDelta(t, 0.20, newEngine(t, WithFeedback(stubFeedback{nudge: 0.02})).ApplyFeedbackTweaks(0.18), 1e-12)
	assert.Equal(t, 0.30, newEngine(t, WithFeedback(stubFeedback{nudge: 0.02})).ApplyFeedbackTweaks(0.30))
	assert.Equal(t, 0.12, newEngine(t, WithFeedback(stubFeedback{nudge: -0.02})).ApplyFeedbackTweaks(0.13))
}

func TestPriceQuote_Deterministic(t *testing.T) {
	e := newEngine(t)
	first, err := e.PriceTranscript(parisTranscript)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.PriceTranscript(parisTranscript)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNewQuoteID_Format(t *testing.T) {
	id := NewQuoteID(testutil.FixedNow)
	assert.Regexp(t, `^Q-20260302093000-[0-9a-f]{8}$`, id)
	assert.NotEqual(t, id, NewQuoteID(testutil.FixedNow))
}
