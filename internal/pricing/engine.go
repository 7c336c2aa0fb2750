// Package pricing turns a transcript into a priced quote: it extracts
// signals, resolves the task graph, prices every task against the catalog
// and rules, and scores the result.
package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/renovo/internal/catalog"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/extract"
	"github.com/alexanderramin/renovo/internal/graph"
	"github.com/alexanderramin/renovo/internal/rules"
)

const (
	// BlendedHourlyRate is the contractor labor rate in EUR per hour.
	BlendedHourlyRate = 48.0
	// HoursPerDay is the productive crew time per working day.
	HoursPerDay = 6.0
	// MaxDurationSlackDays bounds a plausible task duration: at most this
	// many days plus one day per unit of quantity.
	MaxDurationSlackDays = 10

	Currency        = "EUR"
	DefaultZoneName = "Bathroom"
	SystemName      = "renovo pricing engine"
)

// FallbackTasks are priced when a transcript names no recognizable task.
var FallbackTasks = []domain.TaskID{graph.TilingFloor, graph.PaintingWalls}

// FeedbackSource supplies the learned adjustments. *feedback.Store
// implements it.
type FeedbackSource interface {
	MarginNudge() float64
	Productivity(city string, task domain.TaskID) float64
	Degraded() bool
}

type noFeedback struct{}

func (noFeedback) MarginNudge() float64                       { return 0 }
func (noFeedback) Productivity(string, domain.TaskID) float64 { return 1 }
func (noFeedback) Degraded() bool                             { return false }

// Request is one quote request.
type Request struct {
	Transcript string
	Scenario   domain.Scenario
	Market     domain.Market
	ZoneName   string
}

// Engine prices quotes. It holds no per-request state and is safe for
// concurrent use when its FeedbackSource is.
type Engine struct {
	graph    *graph.Graph
	catalog  *catalog.Catalog
	policy   rules.MarginPolicy
	feedback FeedbackSource
	now      func() time.Time
	newID    func(time.Time) string
}

// Option configures an Engine.
type Option func(*Engine)

func WithFeedback(f FeedbackSource) Option {
	return func(e *Engine) { e.feedback = f }
}

func WithPolicy(p rules.MarginPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(fn func(time.Time) string) Option {
	return func(e *Engine) { e.newID = fn }
}

// NewQuoteID formats a quote id as Q-<UTC timestamp>-<random suffix>.
func NewQuoteID(t time.Time) string {
	return fmt.Sprintf("Q-%s-%s", t.UTC().Format("20060102150405"), uuid.NewString()[:8])
}

// NewEngine checks that every graph task has a catalog entry and that the
// margin policy is coherent.
func NewEngine(g *graph.Graph, c *catalog.Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{
		graph:    g,
		catalog:  c,
		policy:   rules.DefaultMarginPolicy(),
		feedback: noFeedback{},
		now:      time.Now,
		newID:    NewQuoteID,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.policy.Validate(); err != nil {
		return nil, err
	}
	var ids []domain.TaskID
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	if missing := c.Covers(ids); len(missing) > 0 {
		return nil, &domain.UnknownTaskError{Task: missing[0], Ref: "graph task without catalog entry"}
	}
	return e, nil
}

// Graph returns the pricing graph.
func (e *Engine) Graph() *graph.Graph { return e.graph }

// Policy returns the margin policy.
func (e *Engine) Policy() rules.MarginPolicy { return e.policy }

// ResolveTaskList orders detected tasks and inserts implied prerequisites.
func (e *Engine) ResolveTaskList(detected []domain.TaskID, sig domain.Signals) ([]domain.TaskID, error) {
	return e.graph.Resolve(detected, sig)
}

// ApplyFeedbackTweaks adds the feedback nudge to margin and clamps the
// result to policy.
func (e *Engine) ApplyFeedbackTweaks(margin float64) float64 {
	return e.policy.Clamp(margin + e.feedback.MarginNudge())
}

// PriceTranscript prices a transcript as a mid scenario in a neutral market.
func (e *Engine) PriceTranscript(transcript string) (*domain.Quote, error) {
	return e.PriceQuote(Request{Transcript: transcript})
}

// PriceScenarios prices req once per scenario, low to high.
func (e *Engine) PriceScenarios(req Request) ([]*domain.Quote, error) {
	out := make([]*domain.Quote, 0, len(rules.AllScenarios))
	for _, s := range rules.AllScenarios {
		req.Scenario = s
		q, err := e.PriceQuote(req)
		if err != nil {
			return nil, fmt.Errorf("pricing %s scenario: %w", s, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// PriceQuote prices one request. Graph and catalog errors abort the quote;
// missing or suspicious input only lowers confidence and adds notes.
func (e *Engine) PriceQuote(req Request) (*domain.Quote, error) {
	if req.Scenario == "" {
		req.Scenario = domain.ScenarioMid
	}
	if req.Market.Seasonality == "" {
		req.Market.Seasonality = domain.SeasonNeutral
	}
	scen, err := rules.ForScenario(req.Scenario)
	if err != nil {
		return nil, err
	}
	if err := rules.ValidateMarket(req.Market); err != nil {
		return nil, err
	}

	ex := extract.Extract(req.Transcript)
	sig := ex.Signals
	notes := ex.Notes()

	detected := ex.Tasks
	if len(detected) == 0 {
		detected = FallbackTasks
		notes = append(notes, fmt.Sprintf("no task recognized in transcript, pricing default scope: %s", joinTasks(FallbackTasks)))
	}

	resolved, err := e.graph.Resolve(detected, sig)
	if err != nil {
		return nil, err
	}

	for _, d := range e.graph.DefaultedInputs(resolved, sig) {
		notes = append(notes, fmt.Sprintf("%s was defaulted; estimates for %s depend on it", d.Signal, joinTasks(d.Tasks)))
	}

	var adjustments []string
	if implied := impliedTasks(detected, resolved); len(implied) > 0 {
		adjustments = append(adjustments, fmt.Sprintf("implied prerequisites added: %s", joinTasks(implied)))
	}

	nudge := e.feedback.MarginNudge()
	margin := e.policy.Margin(rules.MarginInputs{
		BudgetConscious: sig.BudgetConscious.Value,
		FeedbackNudge:   nudge,
		MarketBump:      rules.MarketMarginBump(req.Market),
		ScenarioBump:    scen.MarginBump,
	})
	adjustments = append(adjustments, marginAdjustments(e.policy, sig.BudgetConscious.Value, nudge, req, scen, margin)...)

	city := sig.City.Value
	area := sig.AreaM2.Value
	cityIndex, _ := rules.CityIndex(city)

	p := taskPricer{
		catalog:   e.catalog,
		graph:     e.graph,
		feedback:  e.feedback,
		city:      city,
		cityIndex: cityIndex,
		area:      area,
		budget:    sig.BudgetConscious.Value,
		margin:    margin.Value,
		matMult:   rules.MaterialMultiplier(req.Market) * scen.Material,
		labMult:   rules.LaborMultiplier(req.Market) * scen.Labor,
	}

	zone := domain.Zone{ZoneName: domain.CoalesceStr(req.ZoneName, DefaultZoneName), AreaM2: area, City: city, CityIndex: cityIndex, Tasks: []domain.PricedTask{}}

	var net, vat, total float64
	for _, id := range resolved {
		pt, adj, err := p.price(id)
		if err != nil {
			return nil, err
		}
		zone.Tasks = append(zone.Tasks, pt.rounded())
		adjustments = append(adjustments, adj...)
		net += pt.Pricing.NetPrice
		vat += pt.Pricing.VATAmount
		total += pt.Pricing.TotalPrice
	}

	now := e.now().UTC()
	q := &domain.Quote{
		QuoteID:    e.newID(now),
		CreatedUTC: now,
		System:     SystemName,
		Currency:   Currency,
		Zones:      []domain.Zone{zone},
		Totals:     domain.Totals{NetPrice: round2(net), VATAmount: round2(vat), TotalPrice: round2(total)},
		Assumptions: domain.Assumptions{
			DefaultsApplied:  len(ex.Defaults) > 0 || len(ex.Tasks) == 0,
			DefaultedSignals: nonNilSignals(sig.DefaultedNames()),
			BudgetConscious:  sig.BudgetConscious.Value,
			City:             city,
			Scenario:         req.Scenario,
			Market:           req.Market,
			FeedbackNudge:    nudge,
			Adjustments:      nonNil(adjustments),
			Notes:            nonNil(notes),
		},
	}
	if sig.AreaM2.IsDetected() {
		a := area
		q.Assumptions.TranscriptAreaM2 = &a
	}

	q.Confidence = Confidence(ConfidenceInput{Signals: sig, TasksDetected: len(ex.Tasks)})
	q.Trust = Trust(TrustInput{
		Quote:            q,
		CityDefaulted:    sig.City.IsDefaulted(),
		FeedbackDegraded: e.feedback.Degraded(),
		Policy:           e.policy,
	})
	return q, nil
}

func marginAdjustments(p rules.MarginPolicy, budget bool, nudge float64, req Request, scen rules.ScenarioFactors, m rules.MarginResult) []string {
	var out []string
	if budget {
		out = append(out, fmt.Sprintf("margin reduced to %.0f%% of baseline for budget-conscious client", p.BudgetFactor*100))
	}
	if nudge != 0 {
		out = append(out, fmt.Sprintf("feedback margin nudge %+.3f", nudge))
	}
	if bump := rules.MarketMarginBump(req.Market); bump != 0 {
		out = append(out, fmt.Sprintf("%s season margin bump %+.3f", req.Market.Seasonality, bump))
	}
	if !rules.IsNeutral(req.Market) {
		out = append(out, fmt.Sprintf("market: materials x%.3f, labor x%.3f",
			rules.MaterialMultiplier(req.Market), rules.LaborMultiplier(req.Market)))
	}
	if req.Scenario != domain.ScenarioMid {
		out = append(out, fmt.Sprintf("%s scenario: materials x%.2f, labor x%.2f, margin %+.2f",
			req.Scenario, scen.Material, scen.Labor, scen.MarginBump))
	}
	if m.Clamped {
		out = append(out, fmt.Sprintf("margin %.4f clamped to %.2f", m.Raw, m.Value))
	}
	return out
}

func impliedTasks(detected, resolved []domain.TaskID) []domain.TaskID {
	seen := domain.NewTaskSet(detected...)
	var out []domain.TaskID
	for _, id := range resolved {
		if !seen.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

func joinTasks(ids []domain.TaskID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilSignals(s []domain.SignalName) []domain.SignalName {
	if s == nil {
		return []domain.SignalName{}
	}
	return s
}
