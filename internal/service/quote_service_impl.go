package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/extract"
	"github.com/alexanderramin/renovo/internal/pricing"
	"github.com/alexanderramin/renovo/internal/repository"
)

// DefaultQuoteCacheSize is used when a non-positive cache size is configured.
const DefaultQuoteCacheSize = 256

// ErrNoQuoteStore is returned by operations that need stored quotes when the
// service runs without a quote repository.
var ErrNoQuoteStore = errors.New("no quote store configured")

type quoteService struct {
	engine   *pricing.Engine
	quotes   repository.QuoteRepo
	cache    *lru.Cache[string, *domain.Quote]
	observer UseCaseObserver
}

// NewQuoteService wires the engine to an optional quote repository. Issued
// quotes are kept in an LRU cache so that feedback on a recent quote does not
// hit the database.
func NewQuoteService(
	engine *pricing.Engine,
	quotes repository.QuoteRepo,
	cacheSize int,
	observers ...UseCaseObserver,
) (QuoteService, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultQuoteCacheSize
	}
	cache, err := lru.New[string, *domain.Quote](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating quote cache: %w", err)
	}
	return &quoteService{
		engine:   engine,
		quotes:   quotes,
		cache:    cache,
		observer: useCaseObserverOrNoop(observers),
	}, nil
}

func (s *quoteService) Generate(ctx context.Context, req contract.QuoteRequest) (resp *contract.QuoteResponse, err error) {
	startedAt := time.Now()
	req.Normalize()
	fields := map[string]any{
		"scenario":         req.Scenario,
		"seasonality":      req.Seasonality,
		"transcript_bytes": len(req.Transcript),
	}
	defer func() { observe(ctx, s.observer, "generate-quote", startedAt, fields, err) }()

	if err = req.Validate(); err != nil {
		return nil, err
	}

	preq := pricing.Request{
		Transcript: req.Transcript,
		Scenario:   domain.Scenario(req.Scenario),
		Market:     req.Market(),
		ZoneName:   req.ZoneName,
	}
	var quotes []*domain.Quote
	if req.AllScenarios() {
		quotes, err = s.engine.PriceScenarios(preq)
	} else {
		var q *domain.Quote
		q, err = s.engine.PriceQuote(preq)
		quotes = []*domain.Quote{q}
	}
	if err != nil {
		return nil, err
	}

	for _, q := range quotes {
		if s.quotes != nil {
			if err = s.quotes.Create(ctx, q); err != nil {
				return nil, fmt.Errorf("storing quote: %w", err)
			}
		}
		s.cache.Add(q.QuoteID, q)
	}

	first := quotes[0]
	fields["quote_id"] = first.QuoteID
	fields["city"] = first.Assumptions.City
	fields["tasks"] = len(first.AllTasks())
	fields["total_price"] = first.Totals.TotalPrice
	fields["confidence"] = first.Confidence.Score
	fields["trust"] = first.Trust.Score
	return &contract.QuoteResponse{Quotes: quotes}, nil
}

func (s *quoteService) Get(ctx context.Context, id string) (*domain.Quote, error) {
	id = strings.TrimSpace(id)
	if q, ok := s.cache.Get(id); ok {
		return q, nil
	}
	if s.quotes == nil {
		return nil, fmt.Errorf("quote %s: %w", id, repository.ErrNotFound)
	}
	q, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, q)
	return q, nil
}

func (s *quoteService) History(ctx context.Context, limit int) (resp *contract.HistoryResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"limit": limit}
	defer func() { observe(ctx, s.observer, "quote-history", startedAt, fields, err) }()

	if s.quotes == nil {
		return nil, ErrNoQuoteStore
	}
	if limit <= 0 {
		limit = 20
	}
	// One extra row gives the oldest listed quote something to compare to.
	summaries, err := s.quotes.ListRecent(ctx, limit+1)
	if err != nil {
		return nil, err
	}

	entries := make([]contract.HistoryEntry, 0, min(limit, len(summaries)))
	for i, q := range summaries {
		if i == limit {
			break
		}
		e := contract.HistoryEntry{
			QuoteID:    q.ID,
			CreatedUTC: q.CreatedAt,
			City:       q.City,
			AreaM2:     q.AreaM2,
			Scenario:   q.Scenario,
			TotalPrice: q.TotalPrice,
			Confidence: q.Confidence,
			Trust:      q.Trust,
		}
		if i+1 < len(summaries) {
			e.ChangePct = percentChange(summaries[i+1].TotalPrice, q.TotalPrice)
		}
		entries = append(entries, e)
	}
	fields["entries"] = len(entries)
	return &contract.HistoryResponse{Entries: entries}, nil
}

func (s *quoteService) InspectGraph(ctx context.Context, transcript string) (*contract.GraphReport, error) {
	g := s.engine.Graph()
	report := &contract.GraphReport{}
	for _, n := range g.Nodes() {
		report.Nodes = append(report.Nodes, contract.GraphNode{
			ID:              n.ID,
			Label:           n.Label,
			Category:        n.Category,
			RequiredSignals: n.RequiredSignals,
		})
	}
	for _, e := range g.Edges() {
		report.Edges = append(report.Edges, contract.GraphEdge{From: e.From, To: e.To, Kind: string(e.Kind), Rule: e.Rule})
	}

	if strings.TrimSpace(transcript) == "" {
		return report, nil
	}
	ex := extract.Extract(transcript)
	report.Detected = ex.Tasks
	detected := ex.Tasks
	if len(detected) == 0 {
		detected = pricing.FallbackTasks
	}
	resolved, err := s.engine.ResolveTaskList(detected, ex.Signals)
	if err != nil {
		return nil, err
	}
	report.Resolved = resolved
	return report, nil
}

// percentChange returns the change from prev to cur in percent, rounded to
// two decimals, or nil when prev is zero.
func percentChange(prev, cur float64) *float64 {
	if prev == 0 {
		return nil
	}
	pct := math.Round((cur-prev)/prev*100*100) / 100
	return &pct
}
