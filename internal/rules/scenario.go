package rules

import (
	"fmt"

	"github.com/alexanderramin/renovo/internal/domain"
)

// ScenarioFactors shift a quote towards its low or high envelope.
type ScenarioFactors struct {
	Material   float64
	Labor      float64
	MarginBump float64
}

var scenarios = map[domain.Scenario]ScenarioFactors{
	domain.ScenarioLow:  {Material: 0.95, Labor: 0.92, MarginBump: -0.02},
	domain.ScenarioMid:  {Material: 1.00, Labor: 1.00, MarginBump: 0},
	domain.ScenarioHigh: {Material: 1.08, Labor: 1.10, MarginBump: 0.02},
}

// AllScenarios lists scenarios from cheapest to dearest.
var AllScenarios = []domain.Scenario{domain.ScenarioLow, domain.ScenarioMid, domain.ScenarioHigh}

// ForScenario returns the factors of s. An empty scenario means mid.
func ForScenario(s domain.Scenario) (ScenarioFactors, error) {
	if s == "" {
		s = domain.ScenarioMid
	}
	f, ok := scenarios[s]
	if !ok {
		return ScenarioFactors{}, fmt.Errorf("invalid scenario %q: must be low, mid or high", s)
	}
	return f, nil
}
