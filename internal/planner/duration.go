package planner

import "math"

const (
	baseMinutes        = 10.0
	minutesPerCard     = 0.5 // 30 seconds per card
	maxReviewCredit    = 10.0
	minutesPerWord     = 2.0
	maxOutputCredit    = 4.0
	inputAllowance     = 6.0
	maxSessionMinutes  = 30.0
	backlogOverrideMin = 50
)

// ResolveDuration returns the session budget in minutes. A selected duration is
// returned unchanged; otherwise the budget is estimated from the backlog.
func ResolveDuration(selected *float64, totalCards, vocabToReview int) float64 {
	if selected != nil {
		return *selected
	}

	minutes := baseMinutes
	minutes += math.Min(float64(totalCards)*minutesPerCard, maxReviewCredit)
	minutes += math.Min(float64(vocabToReview)*minutesPerWord, maxOutputCredit)
	minutes += inputAllowance
	return math.Min(minutes, maxSessionMinutes)
}
