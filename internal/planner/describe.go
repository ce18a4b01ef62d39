package planner

import (
	"fmt"
	"strings"

	"github.com/rcliao/study-session/internal/model"
)

// EmptyDescription is returned by Describe for a plan with no activities.
const EmptyDescription = "Nothing to study right now"

const descriptionSeparator = " · "

// Describe renders a one-line summary such as "8 cards · 1 story · 2 sentences".
func Describe(plan model.SessionPlan) string {
	if len(plan.Activities) == 0 {
		return EmptyDescription
	}

	parts := make([]string, 0, len(plan.Activities))
	for _, a := range plan.Activities {
		parts = append(parts, describeActivity(a))
	}
	return strings.Join(parts, descriptionSeparator)
}

func describeActivity(a model.Activity) string {
	switch v := a.(type) {
	case model.ReviewActivity:
		return countNoun(v.CardCount, "card")
	case model.InputActivity:
		if v.ContentType == model.ContentVideo {
			return "1 video"
		}
		return "1 story"
	case model.OutputActivity:
		return countNoun(v.WordCount, "sentence")
	}
	return ""
}

func countNoun(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// Summary counts the quantity scheduled per activity kind.
type Summary struct {
	Cards     int    `json:"cards"`
	Content   string `json:"content,omitempty"`
	Sentences int    `json:"sentences"`
}

// Summarize totals a plan's activities.
func Summarize(plan model.SessionPlan) Summary {
	var s Summary
	for _, a := range plan.Activities {
		switch v := a.(type) {
		case model.ReviewActivity:
			s.Cards += v.CardCount
		case model.InputActivity:
			s.Content = v.ContentID
		case model.OutputActivity:
			s.Sentences += v.WordCount
		}
	}
	return s
}
