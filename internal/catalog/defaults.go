package catalog

import "github.com/alexanderramin/renovo/internal/graph"

// DefaultEntries is the built-in bathroom price list (EUR, mainland France).
func DefaultEntries() []Entry {
	return []Entry{
		{Task: graph.DemolitionFloor, Description: "Floor tile removal, debris bags and skip share", Unit: "m2", UnitCost: 4.0, WastageFraction: 0, LaborHoursPerUnit: 0.8},
		{Task: graph.DemolitionWalls, Description: "Wall tile removal, debris bags and skip share", Unit: "m2", UnitCost: 3.0, WastageFraction: 0, LaborHoursPerUnit: 0.6},
		{Task: graph.PlumbingShower, Description: "Shower mixer, PER piping kit and fittings", Unit: "each", UnitCost: 180.0, WastageFraction: 0.05, LaborHoursPerUnit: 6.0},
		{Task: graph.Waterproofing, Description: "Liquid waterproofing membrane and corner tape", Unit: "m2", UnitCost: 12.0, WastageFraction: 0.08, LaborHoursPerUnit: 0.4},
		{Task: graph.TilingFloor, Description: "Standard ceramic floor tile 30x30, adhesive and grout", Unit: "m2", UnitCost: 32.0, WastageFraction: 0.10, LaborHoursPerUnit: 1.2, Notes: "supplier anchored"},
		{Task: graph.TilingWalls, Description: "Ceramic wall tile 20x40, adhesive and grout", Unit: "m2", UnitCost: 35.0, WastageFraction: 0.12, LaborHoursPerUnit: 1.5},
		{Task: graph.ToiletReplace, Description: "Close-coupled toilet with soft-close seat", Unit: "each", UnitCost: 220.0, WastageFraction: 0, LaborHoursPerUnit: 3.0},
		{Task: graph.VanityInstall, Description: "60 cm vanity unit with basin and mixer", Unit: "each", UnitCost: 350.0, WastageFraction: 0, LaborHoursPerUnit: 4.0},
		{Task: graph.PaintingWalls, Description: "Moisture-resistant acrylic paint, two coats", Unit: "m2", UnitCost: 3.5, WastageFraction: 0.10, LaborHoursPerUnit: 0.35},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultEntries())
	if err != nil {
		panic("catalog: invalid built-in entries: " + err.Error())
	}
	return c
}
