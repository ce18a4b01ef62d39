package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/study-session/internal/model"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		acts []model.Activity
		want string
	}{
		{"empty", nil, EmptyDescription},
		{"one card", []model.Activity{model.ReviewActivity{CardCount: 1}}, "1 card"},
		{"story", []model.Activity{model.InputActivity{ContentType: model.ContentStory}}, "1 story"},
		{"video", []model.Activity{model.InputActivity{ContentType: model.ContentVideo}}, "1 video"},
		{"one sentence", []model.Activity{model.OutputActivity{WordCount: 1}}, "1 sentence"},
		{
			"all",
			[]model.Activity{
				model.ReviewActivity{CardCount: 12},
				model.InputActivity{ContentType: model.ContentStory},
				model.OutputActivity{WordCount: 2},
			},
			"12 cards · 1 story · 2 sentences",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(model.SessionPlan{Activities: tt.acts}))
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(model.SessionPlan{Activities: []model.Activity{
		model.ReviewActivity{CardCount: 7},
		model.InputActivity{ContentType: model.ContentVideo, ContentID: "v1"},
		model.OutputActivity{WordCount: 3},
	}})
	assert.Equal(t, Summary{Cards: 7, Content: "v1", Sentences: 3}, s)
	assert.Equal(t, Summary{}, Summarize(model.SessionPlan{}))
}
