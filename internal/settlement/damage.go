package settlement

import (
	"greenloop-backend/internal/domain"
)

// Damage codes recognized by the inspection flow. Unknown codes are
// rejected by request validation before they reach this package.
const (
	CodeScratchLight = "scratch_light"
	CodeScratchHeavy = "scratch_heavy"
	CodeDentSmall    = "dent_small"
	CodeDentLarge    = "dent_large"
	CodeCrackSmall   = "crack_small"
	CodeCrackLarge   = "crack_large"
	CodeDeformed     = "deformed"
	CodeBroken       = "broken"
)

// damagePointThreshold is the summed-point cutoff above which a unit is
// considered damaged regardless of which codes produced the points.
const damagePointThreshold = 12

// hardFailCodes mark structural defects that fail the unit on sight.
// Point sums under-penalize a single severe defect, so these are
// checked independently of the total.
var hardFailCodes = map[string]bool{
	CodeBroken:     true,
	CodeDeformed:   true,
	CodeCrackLarge: true,
}

type Verdict string

const (
	VerdictGood    Verdict = "GOOD"
	VerdictDamaged Verdict = "DAMAGED"
)

// Observations holds one damage code per inspected face; empty means
// the face is clean.
type Observations struct {
	Front  string `json:"front,omitempty"`
	Back   string `json:"back,omitempty"`
	Left   string `json:"left,omitempty"`
	Right  string `json:"right,omitempty"`
	Top    string `json:"top,omitempty"`
	Bottom string `json:"bottom,omitempty"`
}

// Codes returns the non-empty observations in face order.
func (o Observations) Codes() []string {
	var codes []string
	for _, c := range []string{o.Front, o.Back, o.Left, o.Right, o.Top, o.Bottom} {
		if c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

type DamageAssessment struct {
	Verdict Verdict `json:"verdict"`
	Points  int     `json:"points"`
}

// AssessDamage converts itemized face observations into a condition
// verdict and a damage-point score. The rules are ordered: point sum,
// then hard-fail codes, then per-code count thresholds.
func AssessDamage(obs Observations, policy domain.DamagePolicy) DamageAssessment {
	points := 0
	counts := make(map[string]int)
	for _, code := range obs.Codes() {
		points += policy.PointValues[code]
		counts[code]++
	}

	verdict := VerdictGood
	switch {
	case points > damagePointThreshold:
		verdict = VerdictDamaged
	case hasHardFail(counts):
		verdict = VerdictDamaged
	case counts[CodeScratchHeavy] > 3:
		verdict = VerdictDamaged
	case counts[CodeDentLarge] > 1:
		verdict = VerdictDamaged
	case counts[CodeDentLarge] >= 1 && counts[CodeDentSmall] >= 1:
		verdict = VerdictDamaged
	case counts[CodeCrackSmall] > 1:
		verdict = VerdictDamaged
	}

	return DamageAssessment{Verdict: verdict, Points: points}
}

func hasHardFail(counts map[string]int) bool {
	for code := range counts {
		if hardFailCodes[code] {
			return true
		}
	}
	return false
}
