package settlement

import (
	"testing"

	"greenloop-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func testRewardPolicy() domain.RewardPolicy {
	return domain.RewardPolicy{
		RewardSuccess:        15,
		RewardLate:           5,
		RewardFailed:         0,
		RankingSuccess:       10,
		RankingLate:          3,
		RankingFailedPenalty: -20,
	}
}

func TestAccountPoints(t *testing.T) {
	policy := testRewardPolicy()

	t.Run("Returned on time", func(t *testing.T) {
		delta := AccountPoints(domain.OutcomeReturned, policy, 100)
		assert.Equal(t, int32(15), delta.Reward)
		assert.Equal(t, int32(10), delta.Ranking)
		assert.Equal(t, int32(1), delta.SuccessDelta)
		assert.Equal(t, int32(0), delta.FailedDelta)
	})

	t.Run("Late return still counts as success", func(t *testing.T) {
		delta := AccountPoints(domain.OutcomeReturnLate, policy, 100)
		assert.Equal(t, int32(5), delta.Reward)
		assert.Equal(t, int32(3), delta.Ranking)
		assert.Equal(t, int32(1), delta.SuccessDelta)
	})

	t.Run("Rejected return", func(t *testing.T) {
		delta := AccountPoints(domain.OutcomeRejected, policy, 100)
		assert.Equal(t, int32(0), delta.Reward)
		assert.Equal(t, int32(-20), delta.Ranking)
		assert.Equal(t, int32(1), delta.FailedDelta)
	})

	t.Run("Lost item", func(t *testing.T) {
		delta := AccountPoints(domain.OutcomeLost, policy, 100)
		assert.Equal(t, int32(-20), delta.Ranking)
		assert.Equal(t, int32(1), delta.FailedDelta)
	})

	t.Run("Pool too small forces reward to zero", func(t *testing.T) {
		delta := AccountPoints(domain.OutcomeReturned, policy, 5)
		assert.Equal(t, int32(0), delta.Reward)
		// Ranking is platform-wide and never gated by the pool.
		assert.Equal(t, int32(10), delta.Ranking)
	})

	t.Run("Pool exactly covering the reward disburses it", func(t *testing.T) {
		delta := AccountPoints(domain.OutcomeReturned, policy, 15)
		assert.Equal(t, int32(15), delta.Reward)
	})

	t.Run("Empty pool never blocks a penalty", func(t *testing.T) {
		delta := AccountPoints(domain.OutcomeLost, policy, 0)
		assert.Equal(t, int32(-20), delta.Ranking)
	})
}
