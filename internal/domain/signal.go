package domain

import "fmt"

// SignalName identifies a fact extracted from a transcript.
type SignalName string

const (
	SignalAreaM2           SignalName = "area_m2"
	SignalCity             SignalName = "city"
	SignalBudgetConscious  SignalName = "budget_conscious"
	SignalSubstrateExposed SignalName = "substrate_exposed"
	SignalMixedScope       SignalName = "mixed_scope"
)

// Signal is a typed value with an explicit provenance marker, so that a zero
// value is never mistaken for "unknown".
type Signal[T any] struct {
	Value  T
	Source SignalSource
}

// Detected wraps a value read from the transcript.
func Detected[T any](v T) Signal[T] {
	return Signal[T]{Value: v, Source: SourceDetected}
}

// Defaulted wraps a fallback value applied because the transcript was silent.
func Defaulted[T any](v T) Signal[T] {
	return Signal[T]{Value: v, Source: SourceDefaulted}
}

// IsDetected reports whether the value came from the transcript.
func (s Signal[T]) IsDetected() bool { return s.Source == SourceDetected }

// IsDefaulted reports whether a fallback was applied.
func (s Signal[T]) IsDefaulted() bool { return s.Source == SourceDefaulted }

// Signals is the full set of facts known about one quote request.
type Signals struct {
	AreaM2           Signal[float64]
	City             Signal[string]
	BudgetConscious  Signal[bool]
	SubstrateExposed Signal[bool]
	MixedScope       Signal[bool]
}

// Bool returns the boolean value of a named flag signal. The second result
// is false for names that are not boolean signals.
func (s Signals) Bool(name SignalName) (bool, bool) {
	switch name {
	case SignalBudgetConscious:
		return s.BudgetConscious.Value, true
	case SignalSubstrateExposed:
		return s.SubstrateExposed.Value, true
	case SignalMixedScope:
		return s.MixedScope.Value, true
	}
	return false, false
}

// Source returns the provenance of a named signal.
func (s Signals) Source(name SignalName) (SignalSource, bool) {
	switch name {
	case SignalAreaM2:
		return s.AreaM2.Source, true
	case SignalCity:
		return s.City.Source, true
	case SignalBudgetConscious:
		return s.BudgetConscious.Source, true
	case SignalSubstrateExposed:
		return s.SubstrateExposed.Source, true
	case SignalMixedScope:
		return s.MixedScope.Source, true
	}
	return "", false
}

// DefaultedNames lists the signals that fell back to a default, in a fixed order.
func (s Signals) DefaultedNames() []SignalName {
	var out []SignalName
	for _, name := range []SignalName{SignalAreaM2, SignalCity, SignalBudgetConscious, SignalSubstrateExposed, SignalMixedScope} {
		if src, _ := s.Source(name); src == SourceDefaulted {
			out = append(out, name)
		}
	}
	return out
}

// MissingSignalDefaulted records a signal the transcript did not provide and
// the fallback that was used instead. It is a note, never an error.
type MissingSignalDefaulted struct {
	Signal SignalName
	Value  string
}

func (m MissingSignalDefaulted) String() string {
	return fmt.Sprintf("MissingSignalDefaulted: %s not found in transcript, using %s", m.Signal, m.Value)
}
