package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/rules"
)

// Store owns the feedback state between Load and Save. All reads and writes
// go through it; a mutex serializes read-modify-write so concurrent requests
// never lose an update. Every recorded event is persisted before the call
// returns, and the in-memory state only advances once persistence succeeded.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	state    *State
	degraded bool
	policy   rules.MarginPolicy
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPolicy overrides the margin bounds used by ApplyTweaks.
func WithPolicy(p rules.MarginPolicy) Option {
	return func(s *Store) { s.policy = p }
}

// WithLogger sets the logger used for degraded-state warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		state:   NewState(),
		policy:  rules.DefaultMarginPolicy(),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted state. Corrupt state is not fatal: the store
// starts empty, is marked degraded, and Load returns nil. Other errors are
// returned and also leave an empty, degraded store usable for pricing.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.backend.Load(ctx)
	if err != nil {
		s.state = NewState()
		s.degraded = true
		s.logger.Warn("feedback state unreadable, starting empty", "error", err)
		if errors.Is(err, ErrStoreCorrupt) {
			return nil
		}
		return fmt.Errorf("loading feedback state: %w", err)
	}
	s.state = st
	s.degraded = false
	return nil
}

// Save writes the full state.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Save(ctx, s.state); err != nil {
		return fmt.Errorf("saving feedback state: %w", err)
	}
	return nil
}

// Degraded reports whether the last Load fell back to empty state.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// MarginNudge returns the current global margin adjustment.
func (s *Store) MarginNudge() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MarginNudge(s.state.History)
}

// ApplyTweaks adds the feedback nudge to margin and clamps the result to the
// margin policy.
func (s *Store) ApplyTweaks(margin float64) float64 {
	return s.policy.Clamp(margin + s.MarginNudge())
}

// Productivity returns the learned labor multiplier for (city, task), or
// DefaultMultiplier when nothing was observed.
func (s *Store) Productivity(city string, task domain.TaskID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.state.Productivity[domain.NewProductivityKey(city, task).String()]
	if !ok {
		return DefaultMultiplier
	}
	return ClampMultiplier(m.Multiplier)
}

// History returns a copy of the outcome log, oldest first.
func (s *Store) History() []domain.FeedbackRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.FeedbackRecord(nil), s.state.History...)
}

// Multipliers returns a copy of the learned multipliers sorted by key.
func (s *Store) Multipliers() []domain.ProductivityMultiplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Multipliers()
}

// RecordOutcome appends an accept/reject outcome for quoteID.
func (s *Store) RecordOutcome(ctx context.Context, quoteID string, accepted bool) (domain.FeedbackRecord, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return domain.FeedbackRecord{}, fmt.Errorf("quote id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := domain.FeedbackRecord{QuoteID: quoteID, Accepted: accepted, Timestamp: s.now().UTC()}
	next := s.state.Clone()
	next.History = append(next.History, rec)
	if len(next.History) > MaxHistory {
		next.History = next.History[len(next.History)-MaxHistory:]
	}

	var err error
	if j, ok := s.backend.(Journal); ok {
		err = j.AppendOutcome(ctx, rec, MaxHistory)
	} else {
		err = s.backend.Save(ctx, next)
	}
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("recording outcome for %s: %w", quoteID, err)
	}
	s.state = next
	return rec, nil
}

// RecordRealizedHours folds a realized-vs-estimated labor observation into
// the (city, task) productivity multiplier.
func (s *Store) RecordRealizedHours(ctx context.Context, city string, task domain.TaskID, realized, estimated float64) (domain.ProductivityMultiplier, error) {
	if strings.TrimSpace(city) == "" || task == "" {
		return domain.ProductivityMultiplier{}, fmt.Errorf("city and task are required")
	}
	if math.IsNaN(estimated) || math.IsInf(estimated, 0) || estimated <= 0 {
		return domain.ProductivityMultiplier{}, fmt.Errorf("estimated hours must be > 0, got %v", estimated)
	}
	if math.IsNaN(realized) || math.IsInf(realized, 0) || realized < 0 {
		return domain.ProductivityMultiplier{}, fmt.Errorf("realized hours must be >= 0, got %v", realized)
	}
	ratio := realized / estimated
	if math.IsInf(ratio, 0) {
		return domain.ProductivityMultiplier{}, fmt.Errorf("realized/estimated ratio overflows for %v/%v", realized, estimated)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NewProductivityKey(city, task)
	cur, ok := s.state.Productivity[key.String()]
	if !ok {
		cur = domain.ProductivityMultiplier{City: key.City, Task: task, Multiplier: DefaultMultiplier}
	}
	cur.Multiplier = SmoothMultiplier(cur.Multiplier, ratio)
	cur.Samples++
	cur.LastRatio = ratio
	cur.UpdatedAt = s.now().UTC()

	next := s.state.Clone()
	next.Productivity[key.String()] = cur

	var err error
	if j, ok := s.backend.(Journal); ok {
		err = j.PutMultiplier(ctx, cur)
	} else {
		err = s.backend.Save(ctx, next)
	}
	if err != nil {
		return domain.ProductivityMultiplier{}, fmt.Errorf("recording productivity for %s: %w", key, err)
	}
	s.state = next
	return cur, nil
}
