package settlement

import (
	"testing"

	"greenloop-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func testDamagePolicy() domain.DamagePolicy {
	return domain.DamagePolicy{
		PointValues: map[string]int{
			CodeScratchLight: 1,
			CodeScratchHeavy: 3,
			CodeDentSmall:    3,
			CodeDentLarge:    6,
			CodeCrackSmall:   5,
			CodeCrackLarge:   10,
			CodeDeformed:     10,
			CodeBroken:       15,
		},
	}
}

func TestAssessDamage_AllClean(t *testing.T) {
	res := AssessDamage(Observations{}, testDamagePolicy())
	assert.Equal(t, VerdictGood, res.Verdict)
	assert.Equal(t, 0, res.Points)
}

func TestAssessDamage_BrokenAlwaysFails(t *testing.T) {
	// A single broken face fails the unit regardless of the other faces.
	res := AssessDamage(Observations{Bottom: CodeBroken}, testDamagePolicy())
	assert.Equal(t, VerdictDamaged, res.Verdict)
	assert.Equal(t, 15, res.Points)
}

func TestAssessDamage_PointSumThreshold(t *testing.T) {
	t.Run("At threshold stays good", func(t *testing.T) {
		// 3 + 3 + 3 + 3 = 12, not above the cutoff
		obs := Observations{
			Front: CodeScratchHeavy,
			Back:  CodeScratchHeavy,
			Left:  CodeScratchHeavy,
			Right: CodeDentSmall,
		}
		res := AssessDamage(obs, testDamagePolicy())
		assert.Equal(t, VerdictGood, res.Verdict)
		assert.Equal(t, 12, res.Points)
	})

	t.Run("Above threshold is damaged", func(t *testing.T) {
		// 3 + 3 + 3 + 5 = 14
		obs := Observations{
			Front: CodeScratchHeavy,
			Back:  CodeScratchHeavy,
			Left:  CodeScratchHeavy,
			Right: CodeCrackSmall,
		}
		res := AssessDamage(obs, testDamagePolicy())
		assert.Equal(t, VerdictDamaged, res.Verdict)
		assert.Equal(t, 14, res.Points)
	})
}

func TestAssessDamage_CountThresholds(t *testing.T) {
	tests := []struct {
		name    string
		obs     Observations
		verdict Verdict
	}{
		{
			name:    "Three heavy scratches is acceptable",
			obs:     Observations{Front: CodeScratchHeavy, Back: CodeScratchHeavy, Left: CodeScratchHeavy},
			verdict: VerdictGood,
		},
		{
			name:    "Four heavy scratches fails",
			obs:     Observations{Front: CodeScratchHeavy, Back: CodeScratchHeavy, Left: CodeScratchHeavy, Top: CodeScratchHeavy},
			verdict: VerdictDamaged,
		},
		{
			name:    "Two large dents fails",
			obs:     Observations{Front: CodeDentLarge, Back: CodeDentLarge},
			verdict: VerdictDamaged,
		},
		{
			name:    "Large and small dent together fails",
			obs:     Observations{Front: CodeDentLarge, Back: CodeDentSmall},
			verdict: VerdictDamaged,
		},
		{
			name:    "One small crack is acceptable",
			obs:     Observations{Top: CodeCrackSmall},
			verdict: VerdictGood,
		},
		{
			name:    "Two small cracks fails",
			obs:     Observations{Top: CodeCrackSmall, Bottom: CodeCrackSmall},
			verdict: VerdictDamaged,
		},
		{
			name:    "Large crack is a hard fail",
			obs:     Observations{Left: CodeCrackLarge},
			verdict: VerdictDamaged,
		},
		{
			name:    "Deformed is a hard fail",
			obs:     Observations{Right: CodeDeformed},
			verdict: VerdictDamaged,
		},
		{
			name:    "Light scratches everywhere stays good",
			obs:     Observations{Front: CodeScratchLight, Back: CodeScratchLight, Left: CodeScratchLight, Right: CodeScratchLight, Top: CodeScratchLight, Bottom: CodeScratchLight},
			verdict: VerdictGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AssessDamage(tt.obs, testDamagePolicy())
			assert.Equal(t, tt.verdict, res.Verdict)
		})
	}
}
