package rules

import (
	"strings"

	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/graph"
)

// SupplierQuote is a price observed at a supplier for one SKU.
type SupplierQuote struct {
	SKU         string
	Description string
	UnitPrice   float64
	City        string
}

const (
	tileSKU       = "TILE-STD-01"
	tileDesc      = "Standard ceramic tile 30x30"
	tileBasePrice = 27.0

	// AnchorCatalogWeight is the catalog share of an anchored unit cost; the
	// supplier price takes the rest.
	AnchorCatalogWeight = 0.70

	// Anchored material costs must land within this band of the supplier price.
	AnchorLowRatio  = 0.60
	AnchorHighRatio = 1.40
)

// TilePrice returns the stubbed supplier price for standard floor tile.
func TilePrice(city string) SupplierQuote {
	q := SupplierQuote{SKU: tileSKU, Description: tileDesc, UnitPrice: tileBasePrice, City: city}
	c := strings.ToLower(city)
	switch {
	case strings.Contains(c, "paris"):
		q.UnitPrice = tileBasePrice * 1.12
	case strings.Contains(c, "marseille"):
		q.UnitPrice = tileBasePrice * 0.96
	}
	return q
}

// SupplierAnchor returns the supplier quote anchoring task's material price,
// if any.
func SupplierAnchor(task domain.TaskID, city string) (SupplierQuote, bool) {
	if task == graph.TilingFloor {
		return TilePrice(city), true
	}
	return SupplierQuote{}, false
}

// BlendAnchored mixes a catalog unit cost with the supplier price.
func BlendAnchored(catalogCost, supplierPrice float64) float64 {
	return AnchorCatalogWeight*catalogCost + (1-AnchorCatalogWeight)*supplierPrice
}

// AnchorHolds reports whether unitCost stays within the plausible band around
// the supplier price.
func AnchorHolds(unitCost, supplierPrice float64) bool {
	if supplierPrice <= 0 {
		return false
	}
	r := unitCost / supplierPrice
	return r >= AnchorLowRatio && r <= AnchorHighRatio
}

// BudgetSpecDiscount is the material factor for budget-spec fixtures and tile.
const BudgetSpecDiscount = 0.90

var budgetSpecTasks = map[domain.TaskID]bool{
	graph.TilingFloor:   true,
	graph.TilingWalls:   true,
	graph.VanityInstall: true,
	graph.ToiletReplace: true,
}

// HasBudgetSpec reports whether a cheaper specification exists for task.
func HasBudgetSpec(task domain.TaskID) bool {
	return budgetSpecTasks[task]
}
