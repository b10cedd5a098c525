package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BorrowState string

const (
	BorrowStatePendingPickup BorrowState = "PENDING_PICKUP"
	BorrowStateBorrowing     BorrowState = "BORROWING"
	BorrowStateReturned      BorrowState = "RETURNED"
	BorrowStateReturnLate    BorrowState = "RETURN_LATE"
	BorrowStateRejected      BorrowState = "REJECTED"
	BorrowStateLost          BorrowState = "LOST"
	BorrowStateCancelled     BorrowState = "CANCELLED"
)

// IsTerminal reports whether the state ends the loan lifecycle.
// Terminal states are written only by the settlement path (or cancel)
// and are never left again.
func (s BorrowState) IsTerminal() bool {
	switch s {
	case BorrowStateReturned, BorrowStateReturnLate, BorrowStateRejected, BorrowStateLost, BorrowStateCancelled:
		return true
	}
	return false
}

// SettlementOutcome classifies how a loan was resolved.
type SettlementOutcome string

const (
	OutcomeReturned   SettlementOutcome = "RETURNED"
	OutcomeReturnLate SettlementOutcome = "RETURN_LATE"
	OutcomeRejected   SettlementOutcome = "REJECTED"
	OutcomeLost       SettlementOutcome = "LOST"
)

// State maps an outcome to the terminal borrow state it produces.
func (o SettlementOutcome) State() BorrowState {
	switch o {
	case OutcomeReturned:
		return BorrowStateReturned
	case OutcomeReturnLate:
		return BorrowStateReturnLate
	case OutcomeLost:
		return BorrowStateLost
	default:
		return BorrowStateRejected
	}
}

type BorrowTransaction struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	BusinessID int64       `json:"business_id"`
	ProductID  int64       `json:"product_id"`
	// Deposit snapshot, fixed when the loan is created. All settlement
	// math uses this value, never a live product price.
	DepositAmount int64       `json:"deposit_amount"`
	BorrowDate    time.Time   `json:"borrow_date"`
	DueDate       time.Time   `json:"due_date"`
	State         BorrowState `json:"state"`

	// Audit markers stamped at settlement; recorded, never re-derived.
	RewardPointChanged  int32           `json:"reward_point_changed"`
	RankingPointChanged int32           `json:"ranking_point_changed"`
	EcoPointChanged     decimal.Decimal `json:"eco_point_changed"`
	Co2Changed          decimal.Decimal `json:"co2_changed"`

	// LateProcessed guards the overdue sweeper against double settlement.
	LateProcessed bool `json:"late_processed"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// SettlementResult is returned by both settlement entry points for
// reporting and notification use.
type SettlementResult struct {
	Transaction   *BorrowTransaction `json:"transaction"`
	Outcome       SettlementOutcome  `json:"outcome"`
	Condition     ProductCondition   `json:"condition"`
	DamagePoints  int                `json:"damage_points"`
	LateUnits     int64              `json:"late_units"`
	Fee           int64              `json:"fee"`
	Refund        int64              `json:"refund"`
	RewardPoints  int32              `json:"reward_points"`
	RankingPoints int32              `json:"ranking_points"`
	EcoPoints     decimal.Decimal    `json:"eco_points"`
	Co2Reduced    decimal.Decimal    `json:"co2_reduced"`
	SettlementRef string             `json:"settlement_ref"`
}

// SweepReport summarizes one overdue-sweeper pass.
type SweepReport struct {
	ProcessedCount int32 `json:"processed_count"`
	ForfeitedCount int32 `json:"forfeited_count"`
	FailedCount    int32 `json:"failed_count"`
}
