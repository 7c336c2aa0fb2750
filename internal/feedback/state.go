package feedback

import (
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/renovo/internal/domain"
)

// State is the persisted feedback document.
type State struct {
	History      []domain.FeedbackRecord                  `json:"history"`
	Productivity map[string]domain.ProductivityMultiplier `json:"per_city_task"`
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		History:      []domain.FeedbackRecord{},
		Productivity: map[string]domain.ProductivityMultiplier{},
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := &State{
		History:      append([]domain.FeedbackRecord(nil), s.History...),
		Productivity: make(map[string]domain.ProductivityMultiplier, len(s.Productivity)),
	}
	if c.History == nil {
		c.History = []domain.FeedbackRecord{}
	}
	for k, v := range s.Productivity {
		c.Productivity[k] = v
	}
	return c
}

// normalize repairs a decoded state: nil collections become empty, keys are
// rebuilt from the records, multipliers are clamped and the history is
// trimmed. It reports false when a value is unusable.
func (s *State) normalize() bool {
	if s.History == nil {
		s.History = []domain.FeedbackRecord{}
	}
	if len(s.History) > MaxHistory {
		s.History = s.History[len(s.History)-MaxHistory:]
	}

	fixed := make(map[string]domain.ProductivityMultiplier, len(s.Productivity))
	for k, m := range s.Productivity {
		if math.IsNaN(m.Multiplier) || math.IsInf(m.Multiplier, 0) {
			return false
		}
		if m.Task == "" {
			// Older documents only carried the "city::task" key.
			key, ok := parseKey(k)
			if !ok {
				return false
			}
			m.City, m.Task = key.City, key.Task
		}
		m.City = m.Key().City
		m.Multiplier = ClampMultiplier(m.Multiplier)
		fixed[m.Key().String()] = m
	}
	s.Productivity = fixed
	return true
}

// Multipliers returns the learned multipliers sorted by key.
func (s *State) Multipliers() []domain.ProductivityMultiplier {
	out := make([]domain.ProductivityMultiplier, 0, len(s.Productivity))
	for _, m := range s.Productivity {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key().String() < out[j].Key().String()
	})
	return out
}

func parseKey(k string) (domain.ProductivityKey, bool) {
	city, task, ok := strings.Cut(k, "::")
	if !ok || city == "" || task == "" {
		return domain.ProductivityKey{}, false
	}
	return domain.NewProductivityKey(city, domain.TaskID(task)), true
}
