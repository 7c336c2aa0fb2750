package rules

import "fmt"

// MarginPolicy bounds the margin applied to every priced task.
type MarginPolicy struct {
	Baseline     float64
	Min          float64
	Max          float64
	BudgetFactor float64
}

// DefaultMarginPolicy returns the house policy: 18% baseline, 10% relative
// reduction for budget-conscious clients, bounded to [12%, 30%].
func DefaultMarginPolicy() MarginPolicy {
	return MarginPolicy{
		Baseline:     0.18,
		Min:          0.12,
		Max:          0.30,
		BudgetFactor: 0.90,
	}
}

// MarginInputs are the adjustments stacked on the baseline.
type MarginInputs struct {
	BudgetConscious bool
	FeedbackNudge   float64
	MarketBump      float64
	ScenarioBump    float64
}

// MarginResult is the final margin plus the unclamped value it came from.
type MarginResult struct {
	Value   float64
	Raw     float64
	Clamped bool
}

// Margin stacks the inputs onto the baseline and clamps last.
func (p MarginPolicy) Margin(in MarginInputs) MarginResult {
	m := p.Baseline
	if in.BudgetConscious {
		m *= p.BudgetFactor
	}
	m += in.FeedbackNudge + in.MarketBump + in.ScenarioBump
	v := p.Clamp(m)
	return MarginResult{Value: v, Raw: m, Clamped: v != m}
}

// Clamp bounds m to [Min, Max].
func (p MarginPolicy) Clamp(m float64) float64 {
	if m < p.Min {
		return p.Min
	}
	if m > p.Max {
		return p.Max
	}
	return m
}

// Within reports whether m respects the policy bounds.
func (p MarginPolicy) Within(m float64) bool {
	return m >= p.Min && m <= p.Max
}

// Validate rejects policies whose bounds cannot hold the baseline.
func (p MarginPolicy) Validate() error {
	if p.Min < 0 || p.Max > 1 || p.Min > p.Max {
		return fmt.Errorf("margin policy: invalid bounds [%.2f, %.2f]", p.Min, p.Max)
	}
	if !p.Within(p.Baseline) {
		return fmt.Errorf("margin policy: baseline %.2f outside [%.2f, %.2f]", p.Baseline, p.Min, p.Max)
	}
	if p.BudgetFactor <= 0 || p.BudgetFactor > 1 {
		return fmt.Errorf("margin policy: budget factor %.2f must be in (0, 1]", p.BudgetFactor)
	}
	return nil
}
