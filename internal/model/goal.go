// Package model defines the core study-session data types.
package model

import (
	"fmt"
	"strings"
)

// Goal is the learner's stated objective. The zero value behaves as GoalCasual.
type Goal string

const (
	GoalExam         Goal = "exam"
	GoalTravel       Goal = "travel"
	GoalProfessional Goal = "professional"
	GoalMedia        Goal = "media"
	GoalCasual       Goal = "casual"
)

// ValidGoals are the accepted learning goals.
var ValidGoals = map[Goal]bool{
	GoalExam:         true,
	GoalTravel:       true,
	GoalProfessional: true,
	GoalMedia:        true,
	GoalCasual:       true,
}

// ParseGoal parses a goal label. The empty string is accepted and means "no goal".
func ParseGoal(s string) (Goal, error) {
	g := Goal(strings.ToLower(strings.TrimSpace(s)))
	if g == "" || ValidGoals[g] {
		return g, nil
	}
	return "", fmt.Errorf("invalid goal %q (valid: exam, travel, professional, media, casual)", s)
}

// ContentType identifies the kind of recommended content.
type ContentType string

const (
	ContentStory ContentType = "story"
	ContentVideo ContentType = "video"
)

// ParseContentType parses "story" or "video".
func ParseContentType(s string) (ContentType, error) {
	switch ct := ContentType(strings.ToLower(strings.TrimSpace(s))); ct {
	case ContentStory, ContentVideo:
		return ct, nil
	}
	return "", fmt.Errorf("invalid content type %q (valid: story, video)", s)
}

// ValidLanguages are the supported content languages.
var ValidLanguages = map[string]bool{
	"japanese": true,
	"english":  true,
	"french":   true,
}

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "japanese"
