package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business sustainability counters plus the reward-point pool the
// business funds customer rewards from. The pool can reach zero but
// never goes negative; disbursement is gated on it.
type Business struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	EcoPoints    decimal.Decimal `json:"eco_points"`
	Co2Reduced   decimal.Decimal `json:"co2_reduced"`
	RewardPoints int32           `json:"reward_points"`
	CreatedOn    time.Time       `json:"created_on"`
}
