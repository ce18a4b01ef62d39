package model

import "time"

// CardState is the spaced-repetition stage of a stored card.
type CardState string

const (
	CardNew        CardState = "new"
	CardLearning   CardState = "learning"
	CardReview     CardState = "review"
	CardRelearning CardState = "relearning"
)

// ValidCardStates are the allowed card states.
var ValidCardStates = map[CardState]bool{
	CardNew:        true,
	CardLearning:   true,
	CardReview:     true,
	CardRelearning: true,
}

// Card is a stored flashcard. Due is nil until the card is first introduced.
type Card struct {
	ID             string     `json:"id"`
	Deck           string     `json:"deck"`
	Front          string     `json:"front"`
	Back           string     `json:"back,omitempty"`
	Language       string     `json:"language"`
	State          CardState  `json:"state"`
	Due            *time.Time `json:"due,omitempty"`
	Reps           int        `json:"reps"`
	CreatedAt      time.Time  `json:"created_at"`
	IntroducedAt   *time.Time `json:"introduced_at,omitempty"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// VocabWord is a word tracked for production practice.
type VocabWord struct {
	ID              string     `json:"id"`
	Word            string     `json:"word"`
	Reading         string     `json:"reading,omitempty"`
	Meaning         string     `json:"meaning,omitempty"`
	Language        string     `json:"language"`
	NeedsPractice   bool       `json:"needs_practice"`
	PracticeCount   int        `json:"practice_count"`
	LastPracticedAt *time.Time `json:"last_practiced_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ContentItem is a story or video available to the recommender.
type ContentItem struct {
	ID              string      `json:"id"`
	ContentType     ContentType `json:"content_type"`
	Title           string      `json:"title"`
	Language        string      `json:"language"`
	Level           string      `json:"level,omitempty"`
	DurationSeconds *int        `json:"duration_seconds,omitempty"`
	Body            string      `json:"body,omitempty"`
	ConsumedAt      *time.Time  `json:"consumed_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	SegmentCount    int         `json:"segments,omitempty"`
	Segments        []Segment   `json:"segment_list,omitempty"`
}

// Segment is a paragraph, dialogue line or heading of a content body.
type Segment struct {
	ID        string `json:"id"`
	ContentID string `json:"content_id"`
	Seq       int    `json:"seq"`
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
}
