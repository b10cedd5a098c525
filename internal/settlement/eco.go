package settlement

import (
	"github.com/shopspring/decimal"
)

var (
	gramsPerKg      = decimal.NewFromInt(1000)
	ecoPointsPerCo2 = decimal.NewFromInt(100)
)

// EcoImpact is the sustainability effect of keeping one reusable unit
// in circulation for one loan cycle.
type EcoImpact struct {
	Co2Reduced decimal.Decimal `json:"co2_reduced"`
	EcoPoints  decimal.Decimal `json:"eco_points"`
}

// CalculateEcoImpact derives CO2 avoided (kg) and eco points from the
// unit's plastic-equivalent weight (grams) and its material's emission
// factor (kg CO2 per kg). Both results are truncated, not rounded:
// CO2 to 3 decimal digits, eco points to 2.
func CalculateEcoImpact(plasticGrams, co2EmissionPerKg decimal.Decimal) EcoImpact {
	co2 := plasticGrams.Div(gramsPerKg).Mul(co2EmissionPerKg).Truncate(3)
	eco := co2.Mul(ecoPointsPerCo2).Truncate(2)
	return EcoImpact{Co2Reduced: co2, EcoPoints: eco}
}
