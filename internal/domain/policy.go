package domain

// Policy document names in the policy store.
const (
	PolicyNameBorrow = "borrow"
	PolicyNameReward = "reward"
	PolicyNameDamage = "damage"
)

// BorrowPolicy governs loan duration and late-fee math.
type BorrowPolicy struct {
	MaxBorrowDays int `json:"max_borrow_days"`
	// Number of late units tolerated before full forfeiture.
	MaxLateUnits int `json:"max_late_units"`
	// Percent of the deposit charged per late unit.
	PercentDepositPerLateUnit int `json:"percent_deposit_per_late_unit"`
	MaxConcurrentLoans        int `json:"max_concurrent_loans"`
}

// RewardPolicy holds per-outcome reward and ranking deltas.
// RankingFailedPenalty is typically negative.
type RewardPolicy struct {
	RewardSuccess        int32 `json:"reward_success"`
	RewardLate           int32 `json:"reward_late"`
	RewardFailed         int32 `json:"reward_failed"`
	RankingSuccess       int32 `json:"ranking_success"`
	RankingLate          int32 `json:"ranking_late"`
	RankingFailedPenalty int32 `json:"ranking_failed_penalty"`
}

// DamagePolicy maps itemized damage codes to point costs.
type DamagePolicy struct {
	PointValues map[string]int `json:"point_values"`
}
