package settlement

import (
	"greenloop-backend/internal/domain"
)

// PointDelta is the gamification outcome of one settlement.
type PointDelta struct {
	Reward       int32 `json:"reward"`
	Ranking      int32 `json:"ranking"`
	SuccessDelta int32 `json:"success_delta"`
	FailedDelta  int32 `json:"failed_delta"`
}

// AccountPoints applies the reward policy to a settlement outcome.
// Reward disbursement is gated by the business pool: a pool smaller
// than the configured reward forces the grant to zero, because the
// business cannot go negative. Ranking deltas are platform-wide and
// always apply in full, pool or no pool. A late-but-returned item still
// counts as a successful return in the customer's history.
func AccountPoints(outcome domain.SettlementOutcome, policy domain.RewardPolicy, businessPool int32) PointDelta {
	var delta PointDelta
	switch outcome {
	case domain.OutcomeReturned:
		delta = PointDelta{Reward: policy.RewardSuccess, Ranking: policy.RankingSuccess, SuccessDelta: 1}
	case domain.OutcomeReturnLate:
		delta = PointDelta{Reward: policy.RewardLate, Ranking: policy.RankingLate, SuccessDelta: 1}
	default: // rejected, lost
		delta = PointDelta{Reward: policy.RewardFailed, Ranking: policy.RankingFailedPenalty, FailedDelta: 1}
	}

	if businessPool < delta.Reward {
		delta.Reward = 0
	}
	return delta
}
