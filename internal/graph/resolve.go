package graph

import (
	"github.com/alexanderramin/renovo/internal/domain"
)

// Resolve turns a detected task set into a dependency-complete list in which
// every prerequisite precedes its dependents.
//
//  1. Every detected id must be declared (UnknownTaskError otherwise).
//  2. Implication rules and explicit-prerequisite closure are applied until
//     nothing changes, bounded by the pass cap (ImplicationLimitError).
//  3. The closed set is topologically sorted; independent tasks keep
//     declaration order. A cycle yields GraphCycleError.
//
// An empty detected set resolves to an empty list.
func (g *Graph) Resolve(detected []domain.TaskID, sig domain.Signals) ([]domain.TaskID, error) {
	set := make(domain.TaskSet, len(detected))
	for _, id := range detected {
		if !g.Has(id) {
			return nil, &domain.UnknownTaskError{Task: id, Ref: "detected set"}
		}
		set.Add(id)
	}
	if len(set) == 0 {
		return []domain.TaskID{}, nil
	}

	if err := g.expand(set, sig); err != nil {
		return nil, err
	}
	return g.order(set)
}

// expand runs implication passes followed by prerequisite closure until the
// working set stops growing.
func (g *Graph) expand(set domain.TaskSet, sig domain.Signals) error {
	for pass := 0; pass < g.maxPasses; pass++ {
		changed := g.applyImplications(set, sig)
		if g.closePrerequisites(set) {
			changed = true
		}
		if !changed {
			return nil
		}
	}
	return &domain.ImplicationLimitError{Passes: g.maxPasses}
}

func (g *Graph) applyImplications(set domain.TaskSet, sig domain.Signals) bool {
	changed := false
	for _, n := range g.nodes {
		if !set.Has(n.ID) {
			continue
		}
		for _, rule := range n.Implies {
			if set.Has(rule.Target) {
				continue
			}
			if rule.When == nil || rule.When.Holds(set.Has, sig) {
				set.Add(rule.Target)
				changed = true
			}
		}
	}
	return changed
}

func (g *Graph) closePrerequisites(set domain.TaskSet) bool {
	changed := false
	var stack []domain.TaskID
	for _, n := range g.nodes {
		if set.Has(n.ID) {
			stack = append(stack, n.ID)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, _ := g.Node(id)
		for _, p := range node.Prerequisites {
			if set.Add(p) {
				changed = true
				stack = append(stack, p)
			}
		}
	}
	return changed
}

// predecessors returns the ordering predecessors of n within set: explicit
// prerequisites plus implication targets that are present.
func (g *Graph) predecessors(n domain.TaskNode, set domain.TaskSet) []domain.TaskID {
	seen := make(domain.TaskSet, len(n.Prerequisites)+len(n.Implies))
	var preds []domain.TaskID
	for _, p := range n.Prerequisites {
		if set.Has(p) && seen.Add(p) {
			preds = append(preds, p)
		}
	}
	for _, r := range n.Implies {
		if set.Has(r.Target) && seen.Add(r.Target) {
			preds = append(preds, r.Target)
		}
	}
	return preds
}

// order is Kahn's algorithm with ready tasks released in declaration order.
func (g *Graph) order(set domain.TaskSet) ([]domain.TaskID, error) {
	indegree := make(map[domain.TaskID]int, len(set))
	successors := make(map[domain.TaskID][]domain.TaskID, len(set))
	for _, n := range g.nodes {
		if !set.Has(n.ID) {
			continue
		}
		preds := g.predecessors(n, set)
		indegree[n.ID] = len(preds)
		for _, p := range preds {
			successors[p] = append(successors[p], n.ID)
		}
	}

	out := make([]domain.TaskID, 0, len(set))
	done := make(domain.TaskSet, len(set))
	for len(out) < len(set) {
		var next domain.TaskID
		found := false
		for _, n := range g.nodes {
			if set.Has(n.ID) && !done.Has(n.ID) && indegree[n.ID] == 0 {
				next, found = n.ID, true
				break
			}
		}
		if !found {
			return nil, g.cycleError(set, done)
		}
		done.Add(next)
		out = append(out, next)
		for _, s := range successors[next] {
			indegree[s]--
		}
	}
	return out, nil
}

// cycleError extracts one concrete cycle from the tasks Kahn could not
// release. Each of them has at least one unreleased predecessor, so walking
// predecessors must revisit a task.
func (g *Graph) cycleError(set, done domain.TaskSet) error {
	var start domain.TaskID
	for _, n := range g.nodes {
		if set.Has(n.ID) && !done.Has(n.ID) {
			start = n.ID
			break
		}
	}

	pos := map[domain.TaskID]int{}
	var path []domain.TaskID
	cur := start
	for {
		if i, seen := pos[cur]; seen {
			path = path[i:]
			break
		}
		pos[cur] = len(path)
		path = append(path, cur)
		node, _ := g.Node(cur)
		for _, p := range g.predecessors(node, set) {
			if !done.Has(p) {
				cur = p
				break
			}
		}
	}

	// path walks dependent -> prerequisite; report it prerequisite-first,
	// starting from the earliest declared task.
	cycle := make([]domain.TaskID, len(path))
	for i, id := range path {
		cycle[len(path)-1-i] = id
	}
	first := 0
	for i, id := range cycle {
		if g.index[id] < g.index[cycle[first]] {
			first = i
		}
	}
	cycle = append(cycle[first:], cycle[:first]...)
	cycle = append(cycle, cycle[0])
	return &domain.GraphCycleError{Cycle: cycle}
}
