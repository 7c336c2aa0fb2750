package graph

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/renovo/internal/domain"
)

// TaskPresent holds when the task is in the working set.
type TaskPresent domain.TaskID

func (c TaskPresent) Holds(present func(domain.TaskID) bool, _ domain.Signals) bool {
	return present(domain.TaskID(c))
}

func (c TaskPresent) String() string { return fmt.Sprintf("%s present", string(c)) }

// TaskAbsent holds when the task is not in the working set.
type TaskAbsent domain.TaskID

func (c TaskAbsent) Holds(present func(domain.TaskID) bool, _ domain.Signals) bool {
	return !present(domain.TaskID(c))
}

func (c TaskAbsent) String() string { return fmt.Sprintf("%s absent", string(c)) }

// SignalTrue holds when the named boolean signal is true.
type SignalTrue domain.SignalName

func (c SignalTrue) Holds(_ func(domain.TaskID) bool, sig domain.Signals) bool {
	v, ok := sig.Bool(domain.SignalName(c))
	return ok && v
}

func (c SignalTrue) String() string { return fmt.Sprintf("%s true", string(c)) }

// SignalFalse holds when the named boolean signal is false. A defaulted
// signal counts as false.
type SignalFalse domain.SignalName

func (c SignalFalse) Holds(_ func(domain.TaskID) bool, sig domain.Signals) bool {
	v, ok := sig.Bool(domain.SignalName(c))
	return ok && !v
}

func (c SignalFalse) String() string { return fmt.Sprintf("%s false", string(c)) }

// AllOf holds when every member condition holds.
type AllOf []domain.Condition

// All combines conditions with AND.
func All(conds ...domain.Condition) AllOf {
	return AllOf(conds)
}

func (c AllOf) Holds(present func(domain.TaskID) bool, sig domain.Signals) bool {
	for _, cond := range c {
		if !cond.Holds(present, sig) {
			return false
		}
	}
	return true
}

func (c AllOf) String() string {
	parts := make([]string, len(c))
	for i, cond := range c {
		parts[i] = cond.String()
	}
	return strings.Join(parts, " AND ")
}
