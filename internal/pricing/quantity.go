package pricing

import (
	"math"

	"github.com/alexanderramin/renovo/internal/catalog"
	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/graph"
)

const (
	// WallPaintFactor converts floor area to paintable wall area for a small
	// bathroom (2.2 m ceiling, roughly 60% of the perimeter exposed).
	WallPaintFactor = 2.6
	// ShowerWallFactor converts floor area to tiled and waterproofed wall area.
	ShowerWallFactor = 1.5
)

var areaFactors = map[domain.TaskID]float64{
	graph.DemolitionFloor: 1,
	graph.TilingFloor:     1,
	graph.PaintingWalls:   WallPaintFactor,
	graph.DemolitionWalls: ShowerWallFactor,
	graph.Waterproofing:   ShowerWallFactor,
	graph.TilingWalls:     ShowerWallFactor,
}

// Quantity derives how many catalog units a task needs for a zone of areaM2.
// Tasks without a known area factor fall back on the catalog unit: per-m²
// tasks scale with floor area, everything else is one unit.
func Quantity(task domain.TaskID, entry catalog.Entry, areaM2 float64) float64 {
	if f, ok := areaFactors[task]; ok {
		return round2(areaM2 * f)
	}
	if entry.Unit == "m2" {
		return round2(areaM2)
	}
	return 1
}

// DurationDays is the crew-day estimate for hours of labor: at least one
// day, six productive hours per day.
func DurationDays(hours float64) int {
	d := int(math.Ceil(hours / HoursPerDay))
	if d < 1 {
		return 1
	}
	return d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
