// Package extract turns a free-text transcript into typed signals and the
// set of tasks it mentions. Matching is keyword and pattern based.
package extract

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/rules"
)

const (
	// DefaultAreaM2 is the nominal bathroom floor area used when the
	// transcript gives none.
	DefaultAreaM2 = 4.0
	// FallbackCity is used when no city is named.
	FallbackCity = "Marseille"
)

// Result is everything read from one transcript.
type Result struct {
	Signals  domain.Signals
	Tasks    []domain.TaskID
	Defaults []domain.MissingSignalDefaulted
}

// Notes renders the defaults as assumption notes.
func (r Result) Notes() []string {
	out := make([]string, 0, len(r.Defaults))
	for _, d := range r.Defaults {
		out = append(out, d.String())
	}
	return out
}

// Extract reads signals and tasks from text. It never fails: missing facts
// fall back to named defaults and are reported in Result.Defaults.
func Extract(text string) Result {
	normalized := normalize(text)
	var res Result

	if area, ok := Area(text); ok {
		res.Signals.AreaM2 = domain.Detected(area)
	} else {
		res.Signals.AreaM2 = domain.Defaulted(DefaultAreaM2)
		res.Defaults = append(res.Defaults, domain.MissingSignalDefaulted{
			Signal: domain.SignalAreaM2,
			Value:  strconv.FormatFloat(DefaultAreaM2, 'f', -1, 64) + " m2",
		})
	}

	if city, ok := City(text); ok {
		res.Signals.City = domain.Detected(city)
	} else {
		res.Signals.City = domain.Defaulted(FallbackCity)
		res.Defaults = append(res.Defaults, domain.MissingSignalDefaulted{
			Signal: domain.SignalCity,
			Value:  FallbackCity,
		})
	}

	res.Signals.BudgetConscious = flag(budgetPattern.MatchString(text))
	res.Signals.SubstrateExposed = flag(substrate.MatchString(text))
	res.Signals.MixedScope = flag(MixedScope(text))
	res.Tasks = Tasks(normalized)
	return res
}

func flag(found bool) domain.Signal[bool] {
	if found {
		return domain.Detected(true)
	}
	return domain.Defaulted(false)
}

// Area returns the first positive area expression in text, in m².
func Area(text string) (float64, bool) {
	for _, m := range areaPattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err == nil && v > 0 {
			return v, true
		}
	}
	return 0, false
}

// City returns a known city named anywhere in text, or else the word after
// "located in".
func City(text string) (string, bool) {
	if m := knownCity.FindStringSubmatch(text); m != nil {
		return rules.CanonicalCity(m[1]), true
	}
	if m := locatedIn.FindStringSubmatch(text); m != nil {
		return rules.CanonicalCity(m[1]), true
	}
	return "", false
}

// MixedScope reports a transcript that talks about both kitchen and bathroom
// work, which a single-zone quote cannot price reliably.
func MixedScope(text string) bool {
	return kitchenWord.MatchString(text) && bathWord.MatchString(text)
}

// Tasks returns the tasks mentioned in normalized text, deduplicated, in
// vocabulary order.
func Tasks(normalized string) []domain.TaskID {
	var out []domain.TaskID
	for _, tp := range vocabulary {
		for _, p := range tp.phrases {
			if containsPhrase(normalized, p) {
				out = append(out, tp.task)
				break
			}
		}
	}
	return out
}

// normalize lower-cases text and collapses it to single-space separated
// word tokens, so "Re-tile  the FLOOR!" and "re tile the floor" compare equal.
func normalize(text string) string {
	return " " + strings.Join(wordToken.FindAllString(strings.ToLower(text), -1), " ") + " "
}

func containsPhrase(normalized, phrase string) bool {
	return strings.Contains(normalized, normalize(phrase))
}
