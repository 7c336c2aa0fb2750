package graph

import "github.com/alexanderramin/renovo/internal/domain"

// Bathroom task identifiers.
const (
	DemolitionFloor domain.TaskID = "demolition_floor"
	DemolitionWalls domain.TaskID = "demolition_walls"
	PlumbingShower  domain.TaskID = "plumbing_shower"
	Waterproofing   domain.TaskID = "waterproofing"
	TilingFloor     domain.TaskID = "tiling_floor"
	TilingWalls     domain.TaskID = "tiling_walls"
	ToiletReplace   domain.TaskID = "toilet_replace"
	VanityInstall   domain.TaskID = "vanity_install"
	PaintingWalls   domain.TaskID = "painting_walls"
)

// BathroomNodes returns the built-in bathroom task graph. Declaration order
// is the site work order: strip out, first-fix plumbing, waterproof, tile,
// fit sanitaryware, paint.
func BathroomNodes() []domain.TaskNode {
	substrateCovered := SignalFalse(domain.SignalSubstrateExposed)
	return []domain.TaskNode{
		{
			ID:              DemolitionFloor,
			Label:           "Remove existing floor tiles",
			Category:        domain.CategoryDemolition,
			RequiredSignals: []domain.SignalName{domain.SignalAreaM2},
		},
		{
			ID:              DemolitionWalls,
			Label:           "Remove existing wall tiles in the shower area",
			Category:        domain.CategoryDemolition,
			RequiredSignals: []domain.SignalName{domain.SignalAreaM2},
		},
		{
			ID:       PlumbingShower,
			Label:    "Redo shower plumbing",
			Category: domain.CategoryPlumbing,
			Implies: []domain.ImplicationRule{{
				Target: DemolitionFloor,
				When:   All(TaskPresent(PlumbingShower), TaskAbsent(DemolitionFloor), substrateCovered),
			}},
		},
		{
			ID:              Waterproofing,
			Label:           "Waterproof shower walls",
			Category:        domain.CategoryWaterproofing,
			RequiredSignals: []domain.SignalName{domain.SignalAreaM2},
		},
		{
			ID:              TilingFloor,
			Label:           "Lay new floor tiles",
			Category:        domain.CategoryTiling,
			RequiredSignals: []domain.SignalName{domain.SignalAreaM2},
			Implies: []domain.ImplicationRule{{
				Target: DemolitionFloor,
				When:   All(TaskPresent(TilingFloor), TaskAbsent(DemolitionFloor), substrateCovered),
			}},
		},
		{
			ID:              TilingWalls,
			Label:           "Tile shower walls",
			Category:        domain.CategoryTiling,
			RequiredSignals: []domain.SignalName{domain.SignalAreaM2},
			Prerequisites:   []domain.TaskID{Waterproofing},
			Implies: []domain.ImplicationRule{{
				Target: DemolitionWalls,
				When:   All(TaskPresent(TilingWalls), TaskAbsent(DemolitionWalls), substrateCovered),
			}},
		},
		{
			ID:       ToiletReplace,
			Label:    "Replace toilet",
			Category: domain.CategorySanitary,
		},
		{
			ID:       VanityInstall,
			Label:    "Install vanity unit",
			Category: domain.CategorySanitary,
		},
		{
			ID:              PaintingWalls,
			Label:           "Repaint walls",
			Category:        domain.CategoryPainting,
			RequiredSignals: []domain.SignalName{domain.SignalAreaM2},
		},
	}
}

// Bathroom builds and validates the built-in bathroom graph.
func Bathroom() (*Graph, error) {
	g, err := NewGraph(BathroomNodes())
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
