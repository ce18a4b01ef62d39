package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/study-session/internal/model"
	"github.com/rcliao/study-session/internal/segment"
)

// Export is the JSON document produced by ExportAll and read by Import.
type Export struct {
	Cards   []model.Card        `json:"cards"`
	Vocab   []model.VocabWord   `json:"vocab"`
	Content []model.ContentItem `json:"content"`
}

// ImportResult counts the rows Import actually inserted.
type ImportResult struct {
	Cards   int `json:"cards"`
	Vocab   int `json:"vocab"`
	Content int `json:"content"`
}

// ExportAll returns every live card, every word and every content item with its body.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Export, error) {
	out := &Export{Cards: []model.Card{}, Vocab: []model.VocabWord{}, Content: []model.ContentItem{}}

	rows, err := s.db.QueryContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE deleted_at IS NULL ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out.Cards = append(out.Cards, c)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT `+vocabColumns+` FROM vocab ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		v, err := scanVocab(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out.Vocab = append(out.Vocab, v)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT `+contentColumns+` FROM content c ORDER BY c.rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, item)
	}
	return out, rows.Err()
}

// Import stores an export, keeping IDs. Rows whose ID (or, for vocabulary,
// word and language) already exist are skipped.
func (s *SQLiteStore) Import(ctx context.Context, data *Export) (*ImportResult, error) {
	res := &ImportResult{}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, c := range data.Cards {
		if c.ID == "" {
			c.ID = s.newID()
		}
		lang, err := normalizeLanguage(c.Language)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", c.ID, err)
		}
		state := c.State
		if !model.ValidCardStates[state] {
			state = model.CardNew
		}
		r, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO cards (id, deck, front, back, language, state, due, reps,
			        created_at, introduced_at, last_reviewed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, orDefault(c.Deck, defaultDeck), c.Front, nullString(c.Back), lang, string(state),
			timePtrString(c.Due), c.Reps, formatTime(orNow(c.CreatedAt)),
			timePtrString(c.IntroducedAt), timePtrString(c.LastReviewedAt))
		if err != nil {
			return nil, fmt.Errorf("import card %s: %w", c.ID, err)
		}
		res.Cards += affected(r)
	}

	for _, v := range data.Vocab {
		if v.ID == "" {
			v.ID = s.newID()
		}
		lang, err := normalizeLanguage(v.Language)
		if err != nil {
			return nil, fmt.Errorf("vocab %s: %w", v.Word, err)
		}
		r, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO vocab (id, word, reading, meaning, language, needs_practice,
			        practice_count, last_practiced_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.Word, nullString(v.Reading), nullString(v.Meaning), lang, v.NeedsPractice,
			v.PracticeCount, timePtrString(v.LastPracticedAt), formatTime(orNow(v.CreatedAt)))
		if err != nil {
			return nil, fmt.Errorf("import vocab %s: %w", v.Word, err)
		}
		res.Vocab += affected(r)
	}

	for _, item := range data.Content {
		if item.ID == "" {
			item.ID = s.newID()
		}
		lang, err := normalizeLanguage(item.Language)
		if err != nil {
			return nil, fmt.Errorf("content %s: %w", item.ID, err)
		}
		if _, err := model.ParseContentType(string(item.ContentType)); err != nil {
			return nil, fmt.Errorf("%w: content %s: %v", ErrInvalid, item.ID, err)
		}
		r, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO content (id, content_type, title, language, level, duration_seconds,
			        body, consumed_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, string(item.ContentType), item.Title, lang, nullString(item.Level),
			item.DurationSeconds, nullString(item.Body), timePtrString(item.ConsumedAt),
			formatTime(orNow(item.CreatedAt)))
		if err != nil {
			return nil, fmt.Errorf("import content %s: %w", item.ID, err)
		}
		n := affected(r)
		res.Content += n
		if n == 0 {
			continue
		}
		for i, piece := range segment.Split(item.Body, segment.DefaultOptions()) {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO segments (id, content_id, seq, kind, text, start_line, end_line)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				s.newID(), item.ID, i, piece.Kind, piece.Text, piece.StartLine, piece.EndLine)
			if err != nil {
				return nil, fmt.Errorf("import segment: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func affected(r interface{ RowsAffected() (int64, error) }) int {
	n, _ := r.RowsAffected()
	return int(n)
}

func timePtrString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
