package domain

import (
	"fmt"
	"strings"
)

// GraphCycleError reports a prerequisite cycle in the pricing graph. It is a
// configuration defect and aborts quote generation.
type GraphCycleError struct {
	Cycle []TaskID
}

func (e *GraphCycleError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		parts[i] = string(id)
	}
	return fmt.Sprintf("pricing graph: prerequisite cycle: %s", strings.Join(parts, " -> "))
}

// Involves reports whether id takes part in the cycle.
func (e *GraphCycleError) Involves(id TaskID) bool {
	for _, c := range e.Cycle {
		if c == id {
			return true
		}
	}
	return false
}

// UnknownTaskError reports a reference to a task absent from the graph or catalog.
type UnknownTaskError struct {
	Task TaskID
	// Ref names where the reference came from, e.g. "detected set" or
	// "prerequisite of tiling_walls".
	Ref string
}

func (e *UnknownTaskError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("unknown task %q", e.Task)
	}
	return fmt.Sprintf("unknown task %q (%s)", e.Task, e.Ref)
}

// ImplicationLimitError reports that implication rules did not reach a fixed
// point within the configured pass limit.
type ImplicationLimitError struct {
	Passes int
}

func (e *ImplicationLimitError) Error() string {
	return fmt.Sprintf("pricing graph: implication rules did not settle after %d passes", e.Passes)
}
