package miniapp

import "math"

// Percentage returns correct/total*100 rounded to the nearest integer; 0 for an empty quiz.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// TierFor picks the feedback band: >=80 top, >=60 second, >=40 third, else lowest.
func (m Messages) TierFor(percentage int) Tier {
	switch {
	case percentage >= 80:
		return m.Tiers[0]
	case percentage >= 60:
		return m.Tiers[1]
	case percentage >= 40:
		return m.Tiers[2]
	default:
		return m.Tiers[3]
	}
}
