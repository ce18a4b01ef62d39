// Package planner turns a learner's backlog into a time-boxed study session.
//
// Everything here is pure: no I/O, no shared state. BuildSessionPlan may be
// called concurrently and as often as the caller likes.
package planner

import (
	"math"

	"github.com/rcliao/study-session/internal/model"
)

const (
	minInputMinutes  = 3.0
	maxInputMinutes  = 6.0
	inputShareOfLeft = 0.6
	minOutputMinutes = 2.0
	minutesPerOutput = 2.0
	richOutputWeight = 0.3
	richOutputCap    = 3
	defaultOutputCap = 2
)

// BuildSessionPlan allocates the session budget to review, input and output
// phases, in that order. Phases that would get nothing are left out.
func BuildSessionPlan(in model.PlannerInput) model.SessionPlan {
	totalCards := in.DueCardCount + in.NewCardCount
	duration := ResolveDuration(in.SelectedDurationMinutes, totalCards, in.VocabToReview)

	// A large backlog is drained before anything else is worth doing.
	if totalCards > backlogOverrideMin {
		// Clamp before converting; a huge selected budget would overflow int.
		count := int(math.Min(float64(totalCards), math.Floor(duration/minutesPerCard)))
		return model.SessionPlan{
			Activities:       []model.Activity{model.ReviewActivity{CardCount: count}},
			EstimatedMinutes: int(math.Ceil(float64(count) * minutesPerCard)),
			DueCardCount:     totalCards,
			VocabWordCount:   in.VocabToReview,
		}
	}

	weights := WeightsFor(in.LearningGoal)
	remaining := duration
	activities := []model.Activity{}
	estimated := 0

	if totalCards > 0 {
		reviewTime := math.Min(remaining*weights.Review, float64(totalCards)*minutesPerCard)
		count := min(int(math.Floor(reviewTime/minutesPerCard)), totalCards)
		if count > 0 {
			activities = append(activities, model.ReviewActivity{CardCount: count})
			estimated += int(math.Ceil(float64(count) * minutesPerCard))
			remaining -= float64(count) * minutesPerCard
		}
	}

	if c := in.RecommendedContent; c != nil && remaining >= minInputMinutes {
		activities = append(activities, model.InputActivity{
			ContentType: c.ContentType,
			ContentID:   c.ContentID,
			Title:       c.Title,
			Language:    c.Language,
		})
		// The weight term uses the full budget, not what is left of it.
		inputTime := math.Min(math.Min(remaining*inputShareOfLeft, duration*weights.Input), maxInputMinutes)
		estimated += int(math.Ceil(inputTime))
		remaining -= inputTime
	}

	if in.VocabToReview > 0 && remaining >= minOutputMinutes {
		maxSentences := defaultOutputCap
		if weights.Output >= richOutputWeight {
			maxSentences = richOutputCap
		}
		count := int(math.Min(float64(min(in.VocabToReview, maxSentences)), math.Floor(remaining/minutesPerOutput)))
		if count > 0 {
			activities = append(activities, model.OutputActivity{WordCount: count})
			estimated += int(math.Ceil(float64(count) * minutesPerOutput))
		}
	}

	return model.SessionPlan{
		Activities:       activities,
		EstimatedMinutes: estimated,
		DueCardCount:     totalCards,
		VocabWordCount:   in.VocabToReview,
	}
}
