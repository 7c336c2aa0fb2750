package domain

// TaskID is the slug identifying a renovation task (e.g. "tiling_floor").
type TaskID string

// Condition is a predicate evaluated against the working task set and the
// request signals. Implementations live in the graph package.
type Condition interface {
	Holds(present func(TaskID) bool, sig Signals) bool
	String() string
}

// ImplicationRule inserts Target when When holds for the owning node.
type ImplicationRule struct {
	Target TaskID
	When   Condition
}

// TaskNode is one vertex of the pricing graph. Nodes are defined once at
// startup and never modified.
type TaskNode struct {
	ID              TaskID
	Label           string
	Category        Category
	RequiredSignals []SignalName // quoted with a note when any is defaulted
	Prerequisites   []TaskID
	Implies         []ImplicationRule
}

// TaskSet is an order-insensitive membership set of task IDs.
type TaskSet map[TaskID]struct{}

// NewTaskSet builds a set from the given IDs.
func NewTaskSet(ids ...TaskID) TaskSet {
	s := make(TaskSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s TaskSet) Has(id TaskID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether it was newly added.
func (s TaskSet) Add(id TaskID) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}
