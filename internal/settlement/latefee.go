package settlement

import (
	"time"

	"greenloop-backend/internal/domain"
)

type LateClass string

const (
	LateClassOnTime  LateClass = "ON_TIME"
	LateClassLate    LateClass = "LATE"
	LateClassForfeit LateClass = "FORFEIT"
)

type LateFeeResult struct {
	Class     LateClass `json:"class"`
	LateUnits int64     `json:"late_units"`
	Fee       int64     `json:"fee"`
	Refund    int64     `json:"refund"`
}

// CalculateLateFee classifies a return against the borrow policy and
// splits the deposit into fee and refund. The unit is an explicit
// parameter (day in production, minute in tests); it is never implied.
func CalculateLateFee(dueDate, now time.Time, deposit int64, policy domain.BorrowPolicy, unit time.Duration) LateFeeResult {
	lateUnits := int64(now.Sub(dueDate) / unit)
	if lateUnits <= 0 {
		return LateFeeResult{Class: LateClassOnTime, LateUnits: 0, Fee: 0, Refund: deposit}
	}

	if lateUnits > int64(policy.MaxLateUnits) {
		return LateFeeResult{Class: LateClassForfeit, LateUnits: lateUnits, Fee: deposit, Refund: 0}
	}

	fee := deposit * int64(policy.PercentDepositPerLateUnit) * lateUnits / 100
	if fee > deposit {
		fee = deposit
	}
	return LateFeeResult{
		Class:     LateClassLate,
		LateUnits: lateUnits,
		Fee:       fee,
		Refund:    deposit - fee,
	}
}
