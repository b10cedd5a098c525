package settlement

import (
	"testing"
	"time"

	"greenloop-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCalculateLateFee(t *testing.T) {
	policy := domain.BorrowPolicy{
		MaxLateUnits:              2,
		PercentDepositPerLateUnit: 10,
	}
	deposit := int64(100000)
	due := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Returned before due date", func(t *testing.T) {
		res := CalculateLateFee(due, due.Add(-30*time.Minute), deposit, policy, time.Minute)
		assert.Equal(t, LateClassOnTime, res.Class)
		assert.Equal(t, int64(0), res.Fee)
		assert.Equal(t, deposit, res.Refund)
	})

	t.Run("Returned exactly on due date", func(t *testing.T) {
		res := CalculateLateFee(due, due, deposit, policy, time.Minute)
		assert.Equal(t, LateClassOnTime, res.Class)
		assert.Equal(t, int64(0), res.LateUnits)
		assert.Equal(t, deposit, res.Refund)
	})

	t.Run("Under one full unit is not late", func(t *testing.T) {
		res := CalculateLateFee(due, due.Add(59*time.Second), deposit, policy, time.Minute)
		assert.Equal(t, LateClassOnTime, res.Class)
		assert.Equal(t, int64(0), res.LateUnits)
	})

	t.Run("One unit late", func(t *testing.T) {
		res := CalculateLateFee(due, due.Add(time.Minute), deposit, policy, time.Minute)
		assert.Equal(t, LateClassLate, res.Class)
		assert.Equal(t, int64(1), res.LateUnits)
		assert.Equal(t, int64(10000), res.Fee)
		assert.Equal(t, int64(90000), res.Refund)
	})

	t.Run("At the tolerated maximum", func(t *testing.T) {
		res := CalculateLateFee(due, due.Add(2*time.Minute), deposit, policy, time.Minute)
		assert.Equal(t, LateClassLate, res.Class)
		assert.Equal(t, int64(2), res.LateUnits)
		assert.Equal(t, int64(20000), res.Fee)
		assert.Equal(t, int64(80000), res.Refund)
	})

	t.Run("Past the maximum forfeits the whole deposit", func(t *testing.T) {
		res := CalculateLateFee(due, due.Add(3*time.Minute), deposit, policy, time.Minute)
		assert.Equal(t, LateClassForfeit, res.Class)
		assert.Equal(t, int64(3), res.LateUnits)
		assert.Equal(t, deposit, res.Fee)
		assert.Equal(t, int64(0), res.Refund)
	})

	t.Run("Fee is capped at the deposit", func(t *testing.T) {
		steep := domain.BorrowPolicy{MaxLateUnits: 5, PercentDepositPerLateUnit: 30}
		res := CalculateLateFee(due, due.Add(4*time.Minute), deposit, steep, time.Minute)
		assert.Equal(t, LateClassLate, res.Class)
		assert.Equal(t, deposit, res.Fee)
		assert.Equal(t, int64(0), res.Refund)
	})

	t.Run("Day unit", func(t *testing.T) {
		res := CalculateLateFee(due, due.Add(36*time.Hour), deposit, policy, 24*time.Hour)
		assert.Equal(t, LateClassLate, res.Class)
		assert.Equal(t, int64(1), res.LateUnits)
		assert.Equal(t, int64(10000), res.Fee)
	})
}
