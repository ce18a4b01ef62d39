package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rcliao/study-session/internal/model"
)

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	due := mustAddCard(t, s, AddCardParams{Front: "a"})
	mustAddCard(t, s, AddCardParams{Front: "b"})
	mustAddCard(t, s, AddCardParams{Front: "c"})
	mustReschedule(t, s, RescheduleParams{ID: due.ID, State: model.CardReview, Interval: "1m", Now: t0})
	s.AddVocab(ctx, AddVocabParams{Word: "走る"})
	story, _ := s.AddContent(ctx, AddContentParams{ContentType: model.ContentStory, Title: "s"})
	video, _ := s.AddContent(ctx, AddContentParams{ContentType: model.ContentVideo, Title: "v"})

	sel := 15.0
	in, err := Snapshot(ctx, s, s, s, SnapshotParams{
		Language:        "japanese",
		Goal:            model.GoalCasual,
		SelectedMinutes: &sel,
		NewLimit:        1,
		Now:             t0.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if in.DueCardCount != 1 || in.NewCardCount != 0 || in.VocabToReview != 1 {
		t.Errorf("unexpected counts %+v", in)
	}
	if in.RecommendedContent == nil || in.RecommendedContent.ContentID != story.ID {
		t.Errorf("casual learners should get the story, got %+v", in.RecommendedContent)
	}
	if in.SelectedDurationMinutes == nil || *in.SelectedDurationMinutes != 15 || in.LearningGoal != model.GoalCasual {
		t.Errorf("expected pass-through of duration and goal, got %+v", in)
	}

	in, _ = Snapshot(ctx, s, s, s, SnapshotParams{Language: "japanese", Goal: model.GoalTravel, NewLimit: -1, Now: t0.Add(time.Hour)})
	if in.RecommendedContent == nil || in.RecommendedContent.ContentID != video.ID {
		t.Errorf("travel learners should get the video, got %+v", in.RecommendedContent)
	}
	if in.NewCardCount != 2 {
		t.Errorf("expected 2 new cards without a limit, got %d", in.NewCardCount)
	}
}

type failingCounter struct{}

func (failingCounter) CardCounts(context.Context, CardCountParams) (CardCounts, error) {
	return CardCounts{}, errors.New("boom")
}

func TestSnapshotPropagatesErrors(t *testing.T) {
	s := newTestStore(t)
	_, err := Snapshot(context.Background(), failingCounter{}, s, s, SnapshotParams{})
	if err == nil {
		t.Fatal("expected error")
	}
}
