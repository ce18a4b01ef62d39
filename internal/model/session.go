package model

import (
	"encoding/json"
	"fmt"
)

// RecommendedContent is the single item proposed by the content recommender.
type RecommendedContent struct {
	ContentType     ContentType `json:"contentType"`
	ContentID       string      `json:"contentId"`
	Title           string      `json:"title"`
	Language        string      `json:"language"`
	DurationSeconds *int        `json:"durationSeconds,omitempty"`
}

// PlannerInput holds everything the planner needs for one session.
type PlannerInput struct {
	DueCardCount            int                 `json:"dueCardCount"`
	NewCardCount            int                 `json:"newCardCount"`
	VocabToReview           int                 `json:"vocabToReview"`
	RecommendedContent      *RecommendedContent `json:"recommendedContent,omitempty"`
	SelectedDurationMinutes *float64            `json:"selectedDurationMinutes,omitempty"` // nil means automatic
	LearningGoal            Goal                `json:"learningGoal,omitempty"`
}

// GoalWeights are per-goal time allocation ceilings, relative to the session budget.
type GoalWeights struct {
	Review      float64 `json:"review"`
	Input       float64 `json:"input"`
	Output      float64 `json:"output"`
	PreferVideo bool    `json:"preferVideo"`
}

// ActivityKind tags an Activity.
type ActivityKind string

const (
	KindReview ActivityKind = "review"
	KindInput  ActivityKind = "input"
	KindOutput ActivityKind = "output"
)

// Activity is one step of a session. It is implemented only by
// ReviewActivity, InputActivity and OutputActivity.
type Activity interface {
	Kind() ActivityKind
	activity()
}

// ReviewActivity drills spaced-repetition cards.
type ReviewActivity struct {
	CardCount int `json:"cardCount"`
}

// InputActivity consumes one story or video.
type InputActivity struct {
	ContentType ContentType `json:"contentType"`
	ContentID   string      `json:"contentId"`
	Title       string      `json:"title"`
	Language    string      `json:"language"`
}

// OutputActivity asks the learner to produce sentences with vocabulary.
type OutputActivity struct {
	WordCount int `json:"wordCount"`
}

func (ReviewActivity) Kind() ActivityKind { return KindReview }
func (InputActivity) Kind() ActivityKind  { return KindInput }
func (OutputActivity) Kind() ActivityKind { return KindOutput }

func (ReviewActivity) activity() {}
func (InputActivity) activity()  {}
func (OutputActivity) activity() {}

// SessionPlan is the planner's output.
type SessionPlan struct {
	Activities       []Activity `json:"-"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	DueCardCount     int        `json:"dueCardCount"`
	VocabWordCount   int        `json:"vocabWordCount"`
}

type sessionPlanJSON struct {
	Activities       []json.RawMessage `json:"activities"`
	EstimatedMinutes int               `json:"estimatedMinutes"`
	DueCardCount     int               `json:"dueCardCount"`
	VocabWordCount   int               `json:"vocabWordCount"`
}

// MarshalJSON encodes activities as objects tagged with a "type" field.
func (p SessionPlan) MarshalJSON() ([]byte, error) {
	out := sessionPlanJSON{
		Activities:       make([]json.RawMessage, 0, len(p.Activities)),
		EstimatedMinutes: p.EstimatedMinutes,
		DueCardCount:     p.DueCardCount,
		VocabWordCount:   p.VocabWordCount,
	}
	for _, a := range p.Activities {
		b, err := MarshalActivity(a)
		if err != nil {
			return nil, err
		}
		out.Activities = append(out.Activities, b)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a plan produced by MarshalJSON.
func (p *SessionPlan) UnmarshalJSON(data []byte) error {
	var in sessionPlanJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	acts := make([]Activity, 0, len(in.Activities))
	for _, raw := range in.Activities {
		a, err := UnmarshalActivity(raw)
		if err != nil {
			return err
		}
		acts = append(acts, a)
	}
	*p = SessionPlan{
		Activities:       acts,
		EstimatedMinutes: in.EstimatedMinutes,
		DueCardCount:     in.DueCardCount,
		VocabWordCount:   in.VocabWordCount,
	}
	return nil
}

// MarshalActivity encodes a single activity with its "type" tag.
func MarshalActivity(a Activity) ([]byte, error) {
	switch v := a.(type) {
	case ReviewActivity:
		return json.Marshal(struct {
			Type ActivityKind `json:"type"`
			ReviewActivity
		}{KindReview, v})
	case InputActivity:
		return json.Marshal(struct {
			Type ActivityKind `json:"type"`
			InputActivity
		}{KindInput, v})
	case OutputActivity:
		return json.Marshal(struct {
			Type ActivityKind `json:"type"`
			OutputActivity
		}{KindOutput, v})
	}
	return nil, fmt.Errorf("unknown activity %T", a)
}

// UnmarshalActivity decodes a tagged activity object.
func UnmarshalActivity(data []byte) (Activity, error) {
	var head struct {
		Type ActivityKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case KindReview:
		var a ReviewActivity
		err := json.Unmarshal(data, &a)
		return a, err
	case KindInput:
		var a InputActivity
		err := json.Unmarshal(data, &a)
		return a, err
	case KindOutput:
		var a OutputActivity
		err := json.Unmarshal(data, &a)
		return a, err
	}
	return nil, fmt.Errorf("unknown activity type %q", head.Type)
}
