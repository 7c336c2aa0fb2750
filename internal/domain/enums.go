package domain

// Category groups tasks for VAT purposes.
type Category string

const (
	CategoryDemolition    Category = "demolition"
	CategoryPlumbing      Category = "plumbing"
	CategorySanitary      Category = "sanitary"
	CategoryTiling        Category = "tiling"
	CategoryPainting      Category = "painting"
	CategoryWaterproofing Category = "waterproofing"
	CategoryGeneral       Category = "general"
)

// Scenario selects one of the low / mid / high pricing envelopes.
type Scenario string

const (
	ScenarioLow  Scenario = "low"
	ScenarioMid  Scenario = "mid"
	ScenarioHigh Scenario = "high"
)

// ValidScenarios is the canonical set of accepted scenario strings.
var ValidScenarios = map[string]bool{
	"low": true, "mid": true, "high": true,
}

// Seasonality describes where in the trade's busy season a quote lands.
type Seasonality string

const (
	SeasonNeutral Seasonality = "neutral"
	SeasonPeak    Seasonality = "peak"
	SeasonOff     Seasonality = "off"
)

// ValidSeasonalities is the canonical set of accepted seasonality strings.
var ValidSeasonalities = map[string]bool{
	"neutral": true, "peak": true, "off": true,
}

// SignalSource records whether a signal value came from the transcript or a default.
type SignalSource string

const (
	SourceDetected  SignalSource = "detected"
	SourceDefaulted SignalSource = "defaulted"
)
