package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/study-session/internal/model"
)

func TestWeightsFor(t *testing.T) {
	tests := []struct {
		goal model.Goal
		want model.GoalWeights
	}{
		{model.GoalExam, model.GoalWeights{Review: 0.5, Input: 0.3, Output: 0.2}},
		{model.GoalTravel, model.GoalWeights{Review: 0.3, Input: 0.3, Output: 0.4, PreferVideo: true}},
		{model.GoalProfessional, model.GoalWeights{Review: 0.3, Input: 0.4, Output: 0.3}},
		{model.GoalMedia, model.GoalWeights{Review: 0.3, Input: 0.5, Output: 0.2, PreferVideo: true}},
		{model.GoalCasual, model.GoalWeights{Review: 0.4, Input: 0.4, Output: 0.2}},
		{"", model.GoalWeights{Review: 0.4, Input: 0.4, Output: 0.2}},
		{"gaming", model.GoalWeights{Review: 0.4, Input: 0.4, Output: 0.2}},
	}
	for _, tt := range tests {
		t.Run(string(tt.goal), func(t *testing.T) {
			assert.Equal(t, tt.want, WeightsFor(tt.goal))
		})
	}
}

func TestWeightsForReturnsCopy(t *testing.T) {
	w := WeightsFor(model.GoalExam)
	w.Review = 1
	assert.Equal(t, 0.5, WeightsFor(model.GoalExam).Review)
}
