// Package store provides the study data store: cards, vocabulary and content,
// and the counters and recommender the session planner reads from.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/study-session/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
)

// AddCardParams holds parameters for adding a card.
type AddCardParams struct {
	Deck     string
	Front    string
	Back     string
	Language string
}

// ListCardsParams holds filters for listing cards.
type ListCardsParams struct {
	Deck     string
	Language string
	State    model.CardState
	DueOnly  bool
	Now      time.Time // zero means time.Now()
	Limit    int
}

// RescheduleParams records the outcome of a review decided elsewhere.
type RescheduleParams struct {
	ID       string
	State    model.CardState
	Interval string // e.g. 10m, 1d, 7d
	Now      time.Time
}

// RmCardParams holds parameters for deleting a card.
type RmCardParams struct {
	ID   string
	Hard bool
}

// CardCountParams filters the due/new counts.
type CardCountParams struct {
	Deck     string
	Language string
	NewLimit int       // max new cards per day; negative means no limit
	Now      time.Time // zero means time.Now()
}

// CardCounts is the backlog reported to the planner.
type CardCounts struct {
	Due             int `json:"due"`
	New             int `json:"new"`
	NewAvailable    int `json:"new_available"`
	IntroducedToday int `json:"introduced_today"`
}

// AddVocabParams holds parameters for tracking a word.
type AddVocabParams struct {
	Word     string
	Reading  string
	Meaning  string
	Language string
}

// ListVocabParams holds filters for listing vocabulary.
type ListVocabParams struct {
	Language      string
	NeedsPractice bool
	Limit         int
}

// AddContentParams holds parameters for adding a story or video.
type AddContentParams struct {
	ContentType     model.ContentType
	Title           string
	Language        string
	Level           string
	DurationSeconds *int
	Body            string
}

// ListContentParams holds filters for listing content.
type ListContentParams struct {
	Language        string
	ContentType     model.ContentType
	IncludeConsumed bool
	Limit           int
}

// RecommendParams selects the single item to recommend.
type RecommendParams struct {
	Language    string
	PreferVideo bool
}

// CardCounter reports the review backlog.
type CardCounter interface {
	CardCounts(ctx context.Context, p CardCountParams) (CardCounts, error)
}

// VocabCounter reports how many words need production practice.
type VocabCounter interface {
	VocabToReview(ctx context.Context, language string) (int, error)
}

// Recommender proposes zero or one piece of content.
type Recommender interface {
	Recommend(ctx context.Context, p RecommendParams) (*model.RecommendedContent, error)
}

// Store is everything the CLI needs from persistence.
type Store interface {
	CardCounter
	VocabCounter
	Recommender

	AddCard(ctx context.Context, p AddCardParams) (*model.Card, error)
	GetCard(ctx context.Context, id string) (*model.Card, error)
	ListCards(ctx context.Context, p ListCardsParams) ([]model.Card, error)
	RescheduleCard(ctx context.Context, p RescheduleParams) (*model.Card, error)
	RmCard(ctx context.Context, p RmCardParams) error

	AddVocab(ctx context.Context, p AddVocabParams) (*model.VocabWord, error)
	ListVocab(ctx context.Context, p ListVocabParams) ([]model.VocabWord, error)
	MarkPracticed(ctx context.Context, id string) (*model.VocabWord, error)

	AddContent(ctx context.Context, p AddContentParams) (*model.ContentItem, error)
	GetContent(ctx context.Context, id string) (*model.ContentItem, error)
	ListContent(ctx context.Context, p ListContentParams) ([]model.ContentItem, error)
	MarkConsumed(ctx context.Context, id string) (*model.ContentItem, error)

	// Close closes the store.
	Close() error
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
