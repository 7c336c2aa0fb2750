package domain

import "time"

// Quote is the emitted, priced renovation quote. Field names and JSON keys
// follow the published quote schema.
type Quote struct {
	QuoteID     string      `json:"quote_id"`
	CreatedUTC  time.Time   `json:"created_utc"`
	System      string      `json:"system"`
	Currency    string      `json:"currency"`
	Zones       []Zone      `json:"zones"`
	Totals      Totals      `json:"totals"`
	Assumptions Assumptions `json:"assumptions"`
	Confidence  Score       `json:"confidence"`
	Trust       Score       `json:"trust"`
}

// Zone is one priced room.
type Zone struct {
	ZoneName  string       `json:"zone_name"`
	AreaM2    float64      `json:"area_m2"`
	City      string       `json:"city"`
	CityIndex float64      `json:"city_index"`
	Tasks     []PricedTask `json:"tasks"`
}

// PricedTask is the pricing breakdown of one resolved task.
type PricedTask struct {
	Task                  TaskID       `json:"task"`
	Quantity              float64      `json:"quantity"`
	UnitMaterialDesc      MaterialDesc `json:"unit_material_desc"`
	Labor                 LaborCost    `json:"labor"`
	Materials             MaterialCost `json:"materials"`
	Pricing               TaskPricing  `json:"pricing"`
	EstimatedDurationDays int          `json:"estimated_duration_days"`
}

// MaterialDesc describes the unit of material a task consumes.
type MaterialDesc struct {
	Description     string  `json:"description"`
	Unit            string  `json:"unit"`
	UnitCost        float64 `json:"unit_cost"`
	WastageFraction float64 `json:"wastage_fraction"`
}

type LaborCost struct {
	Hours float64 `json:"hours"`
	Cost  float64 `json:"cost"`
}

type MaterialCost struct {
	Cost float64 `json:"cost"`
}

type TaskPricing struct {
	Margin     float64 `json:"margin"`
	NetPrice   float64 `json:"net_price"`
	VATRate    float64 `json:"vat_rate"`
	VATAmount  float64 `json:"vat_amount"`
	TotalPrice float64 `json:"total_price"`
}

type Totals struct {
	NetPrice   float64 `json:"net_price"`
	VATAmount  float64 `json:"vat_amount"`
	TotalPrice float64 `json:"total_price"`
}

// Market captures macro conditions applied on top of catalog prices.
type Market struct {
	Inflation   float64     `json:"inflation"`
	Seasonality Seasonality `json:"seasonality"`
	Shortage    float64     `json:"shortage"`
}

// Assumptions records every default and adjustment that shaped the prices.
type Assumptions struct {
	TranscriptAreaM2 *float64     `json:"transcript_area_m2"`
	DefaultsApplied  bool         `json:"defaults_applied"`
	DefaultedSignals []SignalName `json:"defaulted_signals"`
	BudgetConscious  bool         `json:"budget_conscious"`
	City             string       `json:"city"`
	Scenario         Scenario     `json:"scenario"`
	Market           Market       `json:"market"`
	FeedbackNudge    float64      `json:"feedback_margin_nudge"`
	Adjustments      []string     `json:"adjustments"`
	Notes            []string     `json:"notes"`
}

// Score is a [0,1] score with the named flags that moved it.
type Score struct {
	Score float64  `json:"score"`
	Flags []string `json:"flags"`
}

// HasFlag reports whether flag was raised.
func (s Score) HasFlag(flag string) bool {
	for _, f := range s.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// AllTasks flattens the tasks of every zone, in zone order.
func (q *Quote) AllTasks() []PricedTask {
	var out []PricedTask
	for _, z := range q.Zones {
		out = append(out, z.Tasks...)
	}
	return out
}
