package rules

import "strings"

// DefaultCityIndex applies to any city outside the known table.
const DefaultCityIndex = 1.00

var cityIndex = map[string]float64{
	"paris":     1.20,
	"lyon":      1.05,
	"marseille": 0.95,
}

// KnownCities lists the cities with a dedicated labor index, in display order.
var KnownCities = []string{"Paris", "Lyon", "Marseille"}

// CityIndex returns the labor multiplier for city and whether the city is in
// the table. Matching ignores case and surrounding space.
func CityIndex(city string) (float64, bool) {
	idx, ok := cityIndex[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return DefaultCityIndex, false
	}
	return idx, true
}

// CanonicalCity returns the display spelling of a known city, or the trimmed
// input when the city is unknown.
func CanonicalCity(city string) string {
	c := strings.TrimSpace(city)
	for _, known := range KnownCities {
		if strings.EqualFold(known, c) {
			return known
		}
	}
	return c
}
