package rules

import "github.com/alexanderramin/renovo/internal/domain"

const (
	// VATStandard applies to plumbing and sanitary goods.
	VATStandard = 0.20
	// VATRenovation is the reduced rate for residential renovation work.
	VATRenovation = 0.10
)

// VATRate maps a task category to its VAT rate (mainland France, residential).
func VATRate(c domain.Category) float64 {
	switch c {
	case domain.CategoryPlumbing, domain.CategorySanitary:
		return VATStandard
	default:
		return VATRenovation
	}
}
