package service

import "math"

// Role scoring constants. The responsible member's raw score scales with
// report completeness between the floor and ceiling; support members earn
// a flat raw score regardless of report quality.
const (
	responsibleFloor = 40.0
	responsibleRange = 60.0
	supportRaw       = 80.0
	bonusPoints      = 15
)

// ResponsibleRaw returns the raw score for the responsible member given
// the closure report completeness ratio in [0, 1].
func ResponsibleRaw(completeness float64) float64 {
	return responsibleFloor + responsibleRange*completeness
}

// SupportRaw returns the raw score for a support member.
func SupportRaw() float64 {
	return supportRaw
}

// FinalScore applies the job type difficulty multiplier to a raw score,
// rounds half away from zero, then adds the flat bonus if granted.
// The bonus is added after multiplication so it is worth the same number
// of points on every job type.
func FinalScore(raw, multiplier float64, bonus bool) int {
	score := int(math.Round(raw * multiplier))
	if bonus {
		score += bonusPoints
	}
	return score
}
