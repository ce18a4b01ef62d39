package store

import (
	"context"
	"time"

	"github.com/rcliao/study-session/internal/model"
	"github.com/rcliao/study-session/internal/planner"
)

// SnapshotParams holds parameters for assembling planner input.
type SnapshotParams struct {
	Language        string
	Deck            string
	Goal            model.Goal
	SelectedMinutes *float64
	NewLimit        int
	Now             time.Time
}

// Snapshot gathers the counts and recommendation the planner needs from the
// three collaborators. The goal's video preference steers the recommendation.
func Snapshot(ctx context.Context, cards CardCounter, vocab VocabCounter, rec Recommender, p SnapshotParams) (model.PlannerInput, error) {
	counts, err := cards.CardCounts(ctx, CardCountParams{
		Deck:     p.Deck,
		Language: p.Language,
		NewLimit: p.NewLimit,
		Now:      p.Now,
	})
	if err != nil {
		return model.PlannerInput{}, err
	}

	words, err := vocab.VocabToReview(ctx, p.Language)
	if err != nil {
		return model.PlannerInput{}, err
	}

	content, err := rec.Recommend(ctx, RecommendParams{
		Language:    p.Language,
		PreferVideo: planner.WeightsFor(p.Goal).PreferVideo,
	})
	if err != nil {
		return model.PlannerInput{}, err
	}

	return model.PlannerInput{
		DueCardCount:            counts.Due,
		NewCardCount:            counts.New,
		VocabToReview:           words,
		RecommendedContent:      content,
		SelectedDurationMinutes: p.SelectedMinutes,
		LearningGoal:            p.Goal,
	}, nil
}
