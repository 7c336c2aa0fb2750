package rules

import (
	"fmt"

	"github.com/alexanderramin/renovo/internal/domain"
)

// NeutralMarket applies no macro adjustment.
func NeutralMarket() domain.Market {
	return domain.Market{Seasonality: domain.SeasonNeutral}
}

// ValidateMarket checks market inputs are in range.
func ValidateMarket(m domain.Market) error {
	if m.Inflation < -0.5 || m.Inflation > 1 {
		return fmt.Errorf("market inflation %.3f must be within [-0.5, 1]", m.Inflation)
	}
	if m.Shortage < 0 || m.Shortage > 1 {
		return fmt.Errorf("market shortage %.3f must be within [0, 1]", m.Shortage)
	}
	if m.Seasonality != "" && !domain.ValidSeasonalities[string(m.Seasonality)] {
		return fmt.Errorf("invalid seasonality %q", m.Seasonality)
	}
	return nil
}

// MaterialMultiplier scales material costs: inflation plus a tenth of the
// shortage severity.
func MaterialMultiplier(m domain.Market) float64 {
	return (1 + m.Inflation) * (1 + 0.10*m.Shortage)
}

// LaborMultiplier scales labor costs: 60% of inflation, then seasonality.
func LaborMultiplier(m domain.Market) float64 {
	f := 1 + 0.6*m.Inflation
	switch m.Seasonality {
	case domain.SeasonPeak:
		f *= 1.05
	case domain.SeasonOff:
		f *= 0.98
	}
	return f
}

// MarketMarginBump protects backlog in peak season and trims margin off season.
func MarketMarginBump(m domain.Market) float64 {
	switch m.Seasonality {
	case domain.SeasonPeak:
		return 0.01
	case domain.SeasonOff:
		return -0.005
	}
	return 0
}

// IsNeutral reports whether m changes nothing.
func IsNeutral(m domain.Market) bool {
	return m.Inflation == 0 && m.Shortage == 0 &&
		(m.Seasonality == "" || m.Seasonality == domain.SeasonNeutral)
}
