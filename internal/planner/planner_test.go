package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/study-session/internal/model"
)

var allGoals = []model.Goal{
	model.GoalExam, model.GoalTravel, model.GoalProfessional, model.GoalMedia, model.GoalCasual, "",
}

func story(id string) *model.RecommendedContent {
	return &model.RecommendedContent{ContentType: model.ContentStory, ContentID: id, Title: "The Fox", Language: "japanese"}
}

func video(id string) *model.RecommendedContent {
	return &model.RecommendedContent{ContentType: model.ContentVideo, ContentID: id, Title: "T", Language: "japanese"}
}

func TestBuildSessionPlanReviewOnly(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{
		DueCardCount: 10,
		LearningGoal: model.GoalCasual,
	})

	// 21 minute automatic budget; review is capped by what ten cards need.
	assert.Equal(t, []model.Activity{model.ReviewActivity{CardCount: 10}}, plan.Activities)
	assert.Equal(t, 5, plan.EstimatedMinutes)
	assert.Equal(t, 10, plan.DueCardCount)
	assert.Equal(t, 0, plan.VocabWordCount)
}

func TestBuildSessionPlanInputAndOutput(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{
		VocabToReview:           5,
		RecommendedContent:      video("v1"),
		SelectedDurationMinutes: minutes(15),
		LearningGoal:            model.GoalMedia,
	})

	require.Len(t, plan.Activities, 2)
	assert.Equal(t, model.InputActivity{
		ContentType: model.ContentVideo, ContentID: "v1", Title: "T", Language: "japanese",
	}, plan.Activities[0])
	// media's output weight is 0.2, so at most two sentences.
	assert.Equal(t, model.OutputActivity{WordCount: 2}, plan.Activities[1])
	assert.Equal(t, 6+4, plan.EstimatedMinutes)
	assert.Equal(t, 5, plan.VocabWordCount)
}

func TestBuildSessionPlanBacklogOverride(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{
		DueCardCount:            60,
		VocabToReview:           4,
		RecommendedContent:      story("s1"),
		SelectedDurationMinutes: minutes(10),
		LearningGoal:            model.GoalTravel,
	})

	assert.Equal(t, []model.Activity{model.ReviewActivity{CardCount: 20}}, plan.Activities)
	assert.Equal(t, 10, plan.EstimatedMinutes)
	assert.Equal(t, 60, plan.DueCardCount)
	assert.Equal(t, 4, plan.VocabWordCount)
}

func TestBuildSessionPlanBacklogOverrideAutomatic(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{DueCardCount: 30, NewCardCount: 30})

	// 10 + 10 + 0 + 6 = 26 minutes, 52 cards at 30 seconds each.
	assert.Equal(t, []model.Activity{model.ReviewActivity{CardCount: 52}}, plan.Activities)
	assert.Equal(t, 26, plan.EstimatedMinutes)
}

func TestBuildSessionPlanBacklogOverrideSmallBacklogNotCapped(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{DueCardCount: 51, SelectedDurationMinutes: minutes(30)})
	assert.Equal(t, []model.Activity{model.ReviewActivity{CardCount: 51}}, plan.Activities)
	assert.Equal(t, 26, plan.EstimatedMinutes)
}

func TestBuildSessionPlanEmpty(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{})
	assert.NotNil(t, plan.Activities)
	assert.Empty(t, plan.Activities)
	assert.Equal(t, 0, plan.EstimatedMinutes)
	assert.Equal(t, EmptyDescription, Describe(plan))
}

func TestBuildSessionPlanInputUsesFullBudgetForWeight(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{
		DueCardCount:            10,
		VocabToReview:           3,
		RecommendedContent:      story("s1"),
		SelectedDurationMinutes: minutes(10),
		LearningGoal:            model.GoalMedia,
	})

	// review: min(10*0.3, 5) = 3 min -> 6 cards, 7 min left.
	// input: min(7*0.6, 10*0.5, 6) = 4.2 -> 5 credited, 2.8 left.
	// output: floor(2.8/2) = 1 sentence.
	assert.Equal(t, []model.Activity{
		model.ReviewActivity{CardCount: 6},
		model.InputActivity{ContentType: model.ContentStory, ContentID: "s1", Title: "The Fox", Language: "japanese"},
		model.OutputActivity{WordCount: 1},
	}, plan.Activities)
	assert.Equal(t, 3+5+2, plan.EstimatedMinutes)
}

func TestBuildSessionPlanSkipsInputWhenShort(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{
		DueCardCount:            10,
		RecommendedContent:      story("s1"),
		SelectedDurationMinutes: minutes(3),
		LearningGoal:            model.GoalExam,
	})
	assert.Equal(t, []model.Activity{model.ReviewActivity{CardCount: 3}}, plan.Activities)
	assert.Equal(t, 2, plan.EstimatedMinutes)
}

func TestBuildSessionPlanOutputCapByGoal(t *testing.T) {
	tests := []struct {
		goal model.Goal
		want int
	}{
		{model.GoalExam, 2},
		{model.GoalTravel, 3},
		{model.GoalProfessional, 3},
		{model.GoalMedia, 2},
		{model.GoalCasual, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.goal), func(t *testing.T) {
			plan := BuildSessionPlan(model.PlannerInput{
				VocabToReview:           10,
				SelectedDurationMinutes: minutes(30),
				LearningGoal:            tt.goal,
			})
			assert.Equal(t, []model.Activity{model.OutputActivity{WordCount: tt.want}}, plan.Activities)
			assert.Equal(t, tt.want*2, plan.EstimatedMinutes)
		})
	}
}

func TestBuildSessionPlanFullSession(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{
		DueCardCount:       5,
		NewCardCount:       3,
		VocabToReview:      4,
		RecommendedContent: video("v9"),
		LearningGoal:       model.GoalTravel,
	})

	// automatic: 10 + 4 + 4 + 6 = 24 minutes.
	require.Len(t, plan.Activities, 3)
	assert.Equal(t, model.ReviewActivity{CardCount: 8}, plan.Activities[0])
	assert.Equal(t, model.KindInput, plan.Activities[1].Kind())
	assert.Equal(t, model.OutputActivity{WordCount: 3}, plan.Activities[2])
	assert.Equal(t, 16, plan.EstimatedMinutes)
	assert.Equal(t, 8, plan.DueCardCount)
	assert.Equal(t, "8 cards · 1 video · 3 sentences", Describe(plan))
}

// Short selected budgets are honored as given, so rounding each phase up can
// credit a little more than the budget.
func TestBuildSessionPlanShortBudgetRoundsUp(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{
		DueCardCount:            3,
		VocabToReview:           1,
		RecommendedContent:      story("s1"),
		SelectedDurationMinutes: minutes(5),
		LearningGoal:            model.GoalExam,
	})
	assert.Len(t, plan.Activities, 3)
	assert.Equal(t, 6, plan.EstimatedMinutes)
}

func TestBuildSessionPlanNegativeCountsAreDegenerate(t *testing.T) {
	plan := BuildSessionPlan(model.PlannerInput{DueCardCount: -5, VocabToReview: -1})
	assert.Empty(t, plan.Activities)
	assert.Equal(t, 0, plan.EstimatedMinutes)
	assert.Equal(t, -5, plan.DueCardCount)
}

func TestBuildSessionPlanHugeSelectedBudget(t *testing.T) {
	tests := []struct {
		name      string
		in        model.PlannerInput
		want      []model.Activity
		estimated int
	}{
		{
			name:      "backlog override takes every card",
			in:        model.PlannerInput{DueCardCount: 60, SelectedDurationMinutes: minutes(1e20)},
			want:      []model.Activity{model.ReviewActivity{CardCount: 60}},
			estimated: 30,
		},
		{
			name:      "output capped by goal",
			in:        model.PlannerInput{VocabToReview: 5, SelectedDurationMinutes: minutes(1e20), LearningGoal: model.GoalTravel},
			want:      []model.Activity{model.OutputActivity{WordCount: 3}},
			estimated: 6,
		},
		{
			name: "every phase capped by its own limit",
			in: model.PlannerInput{
				DueCardCount:            10,
				VocabToReview:           5,
				RecommendedContent:      story("s1"),
				SelectedDurationMinutes: minutes(1e20),
				LearningGoal:            model.GoalCasual,
			},
			want: []model.Activity{
				model.ReviewActivity{CardCount: 10},
				model.InputActivity{ContentType: model.ContentStory, ContentID: "s1", Title: "The Fox", Language: "japanese"},
				model.OutputActivity{WordCount: 2},
			},
			estimated: 5 + 6 + 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildSessionPlan(tt.in)
			assert.Equal(t, tt.want, plan.Activities)
			assert.Equal(t, tt.estimated, plan.EstimatedMinutes)
		})
	}
}

func TestBuildSessionPlanProperties(t *testing.T) {
	durations := []*float64{nil, minutes(5), minutes(15), minutes(30)}
	contents := []*model.RecommendedContent{nil, story("s1"), video("v1")}

	for _, goal := range allGoals {
		for _, sel := range durations {
			for due := 0; due <= 80; due += 3 {
				for vocab := 0; vocab <= 6; vocab++ {
					for _, content := range contents {
						in := model.PlannerInput{
							DueCardCount:            due,
							NewCardCount:            due % 4,
							VocabToReview:           vocab,
							RecommendedContent:      content,
							SelectedDurationMinutes: sel,
							LearningGoal:            goal,
						}
						name := fmt.Sprintf("goal=%q sel=%v due=%d vocab=%d content=%v", goal, sel != nil, due, vocab, content != nil)
						checkPlanInvariants(t, name, in, BuildSessionPlan(in))
					}
				}
			}
		}
	}
}

func checkPlanInvariants(t *testing.T, name string, in model.PlannerInput, plan model.SessionPlan) {
	t.Helper()
	total := in.DueCardCount + in.NewCardCount

	reviewed := 0
	lastRank := -1
	for _, a := range plan.Activities {
		rank := map[model.ActivityKind]int{model.KindReview: 0, model.KindInput: 1, model.KindOutput: 2}[a.Kind()]
		if rank <= lastRank {
			t.Fatalf("%s: activity %s out of order in %+v", name, a.Kind(), plan.Activities)
		}
		lastRank = rank

		switch v := a.(type) {
		case model.ReviewActivity:
			if v.CardCount <= 0 {
				t.Fatalf("%s: empty review emitted", name)
			}
			reviewed += v.CardCount
		case model.OutputActivity:
			if v.WordCount <= 0 || v.WordCount > in.VocabToReview {
				t.Fatalf("%s: output word count %d", name, v.WordCount)
			}
		}
	}
	if reviewed > total {
		t.Fatalf("%s: reviewed %d cards of %d", name, reviewed, total)
	}

	if total > 50 {
		if len(plan.Activities) != 1 || plan.Activities[0].Kind() != model.KindReview {
			t.Fatalf("%s: backlog override produced %+v", name, plan.Activities)
		}
	}

	if total == 0 && in.VocabToReview == 0 && in.RecommendedContent == nil {
		if len(plan.Activities) != 0 || plan.EstimatedMinutes != 0 {
			t.Fatalf("%s: expected empty plan, got %+v", name, plan)
		}
	}

	// Automatic budgets and the 30 minute preset always fit.
	if in.SelectedDurationMinutes == nil || *in.SelectedDurationMinutes == 30 {
		budget := ResolveDuration(in.SelectedDurationMinutes, total, in.VocabToReview)
		if float64(plan.EstimatedMinutes) > budget {
			t.Fatalf("%s: estimated %d exceeds budget %v", name, plan.EstimatedMinutes, budget)
		}
	}
}

func TestBuildSessionPlanConcurrent(t *testing.T) {
	in := model.PlannerInput{DueCardCount: 12, VocabToReview: 2, RecommendedContent: story("s1")}
	want := BuildSessionPlan(in)

	done := make(chan model.SessionPlan, 16)
	for i := 0; i < cap(done); i++ {
		go func() { done <- BuildSessionPlan(in) }()
	}
	for i := 0; i < cap(done); i++ {
		assert.Equal(t, want, <-done)
	}
}
