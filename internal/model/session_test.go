package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPlanJSONTagsActivities(t *testing.T) {
	plan := SessionPlan{
		Activities: []Activity{
			ReviewActivity{CardCount: 8},
			InputActivity{ContentType: ContentStory, ContentID: "s1", Title: "Momotaro", Language: "japanese"},
			OutputActivity{WordCount: 2},
		},
		EstimatedMinutes: 14,
		DueCardCount:     9,
		VocabWordCount:   4,
	}

	b, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"activities": [
			{"type":"review","cardCount":8},
			{"type":"input","contentType":"story","contentId":"s1","title":"Momotaro","language":"japanese"},
			{"type":"output","wordCount":2}
		],
		"estimatedMinutes": 14,
		"dueCardCount": 9,
		"vocabWordCount": 4
	}`, string(b))

	var back SessionPlan
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, plan, back)
}

func TestSessionPlanJSONEmptyActivities(t *testing.T) {
	b, err := json.Marshal(SessionPlan{})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"activities":[]`)
}

func TestUnmarshalActivityUnknownType(t *testing.T) {
	_, err := UnmarshalActivity([]byte(`{"type":"dance"}`))
	assert.Error(t, err)
}

func TestParseGoal(t *testing.T) {
	g, err := ParseGoal(" Travel ")
	require.NoError(t, err)
	assert.Equal(t, GoalTravel, g)

	g, err = ParseGoal("")
	require.NoError(t, err)
	assert.Equal(t, Goal(""), g)

	_, err = ParseGoal("gaming")
	assert.Error(t, err)
}

func TestParseContentType(t *testing.T) {
	ct, err := ParseContentType("VIDEO")
	require.NoError(t, err)
	assert.Equal(t, ContentVideo, ct)

	_, err = ParseContentType("podcast")
	assert.Error(t, err)
}
