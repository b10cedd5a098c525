package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateEcoImpact(t *testing.T) {
	t.Run("Truncates rather than rounds", func(t *testing.T) {
		// 123g of PP at 1.2345 kg CO2/kg: 0.123 * 1.2345 = 0.1518435
		plastic := decimal.NewFromInt(123)
		factor := decimal.RequireFromString("1.2345")

		impact := CalculateEcoImpact(plastic, factor)
		assert.True(t, impact.Co2Reduced.Equal(decimal.RequireFromString("0.151")),
			"got %s", impact.Co2Reduced)
		assert.True(t, impact.EcoPoints.Equal(decimal.RequireFromString("15.1")),
			"got %s", impact.EcoPoints)
	})

	t.Run("Whole-number weight", func(t *testing.T) {
		// 500g at 2 kg CO2/kg: co2 = 1.000, eco = 100.00
		impact := CalculateEcoImpact(decimal.NewFromInt(500), decimal.NewFromInt(2))
		assert.True(t, impact.Co2Reduced.Equal(decimal.NewFromInt(1)))
		assert.True(t, impact.EcoPoints.Equal(decimal.NewFromInt(100)))
	})

	t.Run("Eco points truncate independently of CO2", func(t *testing.T) {
		// 37g at 1.5 kg CO2/kg: 0.037*1.5 = 0.0555 -> 0.055; eco 5.5 -> 5.5
		impact := CalculateEcoImpact(decimal.NewFromInt(37), decimal.RequireFromString("1.5"))
		assert.True(t, impact.Co2Reduced.Equal(decimal.RequireFromString("0.055")))
		assert.True(t, impact.EcoPoints.Equal(decimal.RequireFromString("5.5")))
	})

	t.Run("Zero weight", func(t *testing.T) {
		impact := CalculateEcoImpact(decimal.Zero, decimal.NewFromInt(3))
		assert.True(t, impact.Co2Reduced.IsZero())
		assert.True(t, impact.EcoPoints.IsZero())
	})
}
