package graph

import (
	"fmt"

	"github.com/alexanderramin/renovo/internal/domain"
)

// MaxImplicationPasses is the default cap on implication/closure passes.
const MaxImplicationPasses = 32

// EdgeKind distinguishes declared prerequisites from rule-inserted ones.
type EdgeKind string

const (
	EdgeExplicit EdgeKind = "explicit"
	EdgeImplied  EdgeKind = "implied"
)

// Edge points from a prerequisite to the task that depends on it.
type Edge struct {
	From domain.TaskID
	To   domain.TaskID
	Kind EdgeKind
	// Rule is the rendered implication condition for implied edges.
	Rule string
}

// Graph is an immutable set of task nodes in declaration order. The
// declaration order is the tie-break for independent tasks when sorting.
type Graph struct {
	nodes     []domain.TaskNode
	index     map[domain.TaskID]int
	maxPasses int
}

// Option configures a Graph.
type Option func(*Graph)

// WithMaxImplicationPasses overrides the implication pass cap.
func WithMaxImplicationPasses(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.maxPasses = n
		}
	}
}

// NewGraph validates referential integrity and builds a graph. Cycles are not
// rejected here; see Validate and Resolve.
func NewGraph(nodes []domain.TaskNode, opts ...Option) (*Graph, error) {
	g := &Graph{
		nodes:     make([]domain.TaskNode, len(nodes)),
		index:     make(map[domain.TaskID]int, len(nodes)),
		maxPasses: MaxImplicationPasses,
	}
	copy(g.nodes, nodes)
	for _, opt := range opts {
		opt(g)
	}

	for i, n := range g.nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("nodes[%d]: task id is required", i)
		}
		if _, dup := g.index[n.ID]; dup {
			return nil, fmt.Errorf("nodes[%d]: duplicate task id %q", i, n.ID)
		}
		g.index[n.ID] = i
	}

	for _, n := range g.nodes {
		for _, p := range n.Prerequisites {
			if _, ok := g.index[p]; !ok {
				return nil, &domain.UnknownTaskError{Task: p, Ref: "prerequisite of " + string(n.ID)}
			}
		}
		for _, r := range n.Implies {
			if _, ok := g.index[r.Target]; !ok {
				return nil, &domain.UnknownTaskError{Task: r.Target, Ref: "implied by " + string(n.ID)}
			}
			if r.Target == n.ID {
				return nil, fmt.Errorf("task %q implies itself", n.ID)
			}
		}
	}

	return g, nil
}

// Has reports whether id is declared.
func (g *Graph) Has(id domain.TaskID) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node declared for id.
func (g *Graph) Node(id domain.TaskID) (domain.TaskNode, bool) {
	i, ok := g.index[id]
	if !ok {
		return domain.TaskNode{}, false
	}
	return g.nodes[i], true
}

// Nodes returns the nodes in declaration order.
func (g *Graph) Nodes() []domain.TaskNode {
	out := make([]domain.TaskNode, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// DefaultedInput names a required signal that fell back to a default and
// the tasks whose quantities depend on it.
type DefaultedInput struct {
	Signal domain.SignalName
	Tasks  []domain.TaskID
}

// DefaultedInputs checks the RequiredSignals of each task in order against
// sig. Signals are reported in first-seen order; undeclared tasks are skipped.
func (g *Graph) DefaultedInputs(order []domain.TaskID, sig domain.Signals) []DefaultedInput {
	var out []DefaultedInput
	pos := map[domain.SignalName]int{}
	for _, id := range order {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		for _, name := range n.RequiredSignals {
			if src, _ := sig.Source(name); src != domain.SourceDefaulted {
				continue
			}
			i, seen := pos[name]
			if !seen {
				i = len(out)
				pos[name] = i
				out = append(out, DefaultedInput{Signal: name})
			}
			out[i].Tasks = append(out[i].Tasks, id)
		}
	}
	return out
}

// Edges lists every explicit and implied edge in declaration order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		for _, p := range n.Prerequisites {
			edges = append(edges, Edge{From: p, To: n.ID, Kind: EdgeExplicit})
		}
		for _, r := range n.Implies {
			e := Edge{From: r.Target, To: n.ID, Kind: EdgeImplied}
			if r.When != nil {
				e.Rule = r.When.String()
			}
			edges = append(edges, e)
		}
	}
	return edges
}

// Validate checks the whole graph for prerequisite cycles, counting implied
// edges as well, so that no request can ever hit one.
func (g *Graph) Validate() error {
	all := make(domain.TaskSet, len(g.nodes))
	for _, n := range g.nodes {
		all.Add(n.ID)
	}
	_, err := g.order(all)
	return err
}
