package pricing

import (
	"fmt"

	"github.com/alexanderramin/renovo/internal/catalog"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/graph"
	"github.com/alexanderramin/renovo/internal/rules"
)

// taskPricer holds what every task of one zone is priced against.
type taskPricer struct {
	catalog   *catalog.Catalog
	graph     *graph.Graph
	feedback  FeedbackSource
	city      string
	cityIndex float64
	area      float64
	budget    bool
	margin    float64
	matMult   float64
	labMult   float64
}

type pricedTask struct {
	domain.PricedTask
}

// price computes one task's breakdown at full precision, plus notes on every
// adjustment that moved it away from the plain catalog price.
func (p taskPricer) price(id domain.TaskID) (pricedTask, []string, error) {
	entry, err := p.catalog.Lookup(id)
	if err != nil {
		return pricedTask{}, nil, err
	}
	node, ok := p.graph.Node(id)
	if !ok {
		return pricedTask{}, nil, &domain.UnknownTaskError{Task: id, Ref: "pricing graph"}
	}

	var notes []string
	qty := Quantity(id, entry, p.area)

	desc := entry.Desc()
	if anchor, ok := rules.SupplierAnchor(id, p.city); ok {
		desc.UnitCost = rules.BlendAnchored(entry.UnitCost, anchor.UnitPrice)
		notes = append(notes, fmt.Sprintf("%s unit cost blended with supplier %s at %.2f/%s",
			id, anchor.SKU, anchor.UnitPrice, entry.Unit))
	}

	material := desc.UnitCost * qty * (1 + desc.WastageFraction) * p.matMult
	if p.budget && rules.HasBudgetSpec(id) {
		material *= rules.BudgetSpecDiscount
		notes = append(notes, fmt.Sprintf("%s budget specification, materials x%.2f", id, rules.BudgetSpecDiscount))
	}

	productivity := p.feedback.Productivity(p.city, id)
	if productivity != 1 {
		notes = append(notes, fmt.Sprintf("%s labor hours x%.3f from realized-hours feedback", id, productivity))
	}
	hours := entry.LaborHoursPerUnit * qty * p.cityIndex * productivity
	labor := hours * BlendedHourlyRate * p.labMult

	net := (material + labor) * (1 + p.margin)
	vatRate := rules.VATRate(node.Category)
	vat := net * vatRate

	pt := domain.PricedTask{
		Task:             id,
		Quantity:         qty,
		UnitMaterialDesc: desc,
		Labor:            domain.LaborCost{Hours: hours, Cost: labor},
		Materials:        domain.MaterialCost{Cost: material},
		Pricing: domain.TaskPricing{
			Margin:     p.margin,
			NetPrice:   net,
			VATRate:    vatRate,
			VATAmount:  vat,
			TotalPrice: net + vat,
		},
		EstimatedDurationDays: DurationDays(hours),
	}
	return pricedTask{pt}, notes, nil
}

// rounded returns the task with money and hours rounded to cents. Margin
// and VAT rate are reported exactly.
func (t pricedTask) rounded() domain.PricedTask {
	r := t.PricedTask
	r.UnitMaterialDesc.UnitCost = round2(r.UnitMaterialDesc.UnitCost)
	r.Labor.Hours = round2(r.Labor.Hours)
	r.Labor.Cost = round2(r.Labor.Cost)
	r.Materials.Cost = round2(r.Materials.Cost)
	r.Pricing.NetPrice = round2(r.Pricing.NetPrice)
	r.Pricing.VATAmount = round2(r.Pricing.VATAmount)
	r.Pricing.TotalPrice = round2(r.Pricing.TotalPrice)
	return r
}
