package planner

import "github.com/rcliao/study-session/internal/model"

var goalWeights = map[model.Goal]model.GoalWeights{
	model.GoalExam:         {Review: 0.5, Input: 0.3, Output: 0.2},
	model.GoalTravel:       {Review: 0.3, Input: 0.3, Output: 0.4, PreferVideo: true},
	model.GoalProfessional: {Review: 0.3, Input: 0.4, Output: 0.3},
	model.GoalMedia:        {Review: 0.3, Input: 0.5, Output: 0.2, PreferVideo: true},
	model.GoalCasual:       {Review: 0.4, Input: 0.4, Output: 0.2},
}

// WeightsFor returns the time weights for a goal. The empty goal, and any
// label it does not know, get the casual profile.
func WeightsFor(goal model.Goal) model.GoalWeights {
	if w, ok := goalWeights[goal]; ok {
		return w
	}
	return goalWeights[model.GoalCasual]
}
