package extract

import (
	"regexp"

	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/graph"
)

type taskPhrases struct {
	task    domain.TaskID
	phrases []string
}

// vocabulary maps lower-cased phrases to tasks. Order only affects the
// order of Result.Tasks; the graph fixes the final work order.
var vocabulary = []taskPhrases{
	{graph.DemolitionFloor, []string{"remove the old tiles", "remove old tiles", "demo tiles", "tile removal", "rip out the floor", "demolish the floor"}},
	{graph.DemolitionWalls, []string{"strip the walls", "wall tile removal", "remove the wall tiling"}},
	{graph.PlumbingShower, []string{"redo the plumbing for the shower", "plumbing for the shower", "shower plumbing", "redo plumbing", "new shower"}},
	{graph.Waterproofing, []string{"waterproof", "waterproofing", "tanking"}},
	{graph.TilingFloor, []string{"lay new ceramic floor tiles", "floor tiles", "retile floor", "retile the floor", "tile the floor", "floor tiling"}},
	{graph.TilingWalls, []string{"wall tiles", "tile the walls", "retile the walls", "retile walls", "splashback"}},
	{graph.ToiletReplace, []string{"replace the toilet", "toilet", "toilets", "wc"}},
	{graph.VanityInstall, []string{"install a vanity", "vanity", "washbasin unit"}},
	{graph.PaintingWalls, []string{"repaint the walls", "paint the walls", "repainting", "painting"}},
}

var (
	areaPattern   = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:m²|m2|m\^2|sqm|sq\.?\s?m\b|square\s+met(?:er|re)s?)`)
	knownCity     = regexp.MustCompile(`(?i)\b(paris|lyon|marseille)\b`)
	locatedIn     = regexp.MustCompile(`(?i)\blocated\s+in\s+([\p{L}][\p{L}'\-]*)`)
	budgetPattern = regexp.MustCompile(`(?i)budget[- ]?conscious|tight budget|cost[- ]sensitive|on a budget|low budget`)
	substrate     = regexp.MustCompile(`(?i)already (?:stripped|removed|demolished)|bare (?:concrete|slab|screed)|substrate (?:is )?exposed|down to the (?:slab|screed)`)
	kitchenWord   = regexp.MustCompile(`(?i)\bkitchen`)
	bathWord      = regexp.MustCompile(`(?i)\bbath`)
	wordToken     = regexp.MustCompile(`[\p{L}\p{N}]+`)
)
