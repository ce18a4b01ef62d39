package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/study-session/internal/model"
)

const defaultDeck = "default"

// AddCard stores a new, not yet introduced card.
func (s *SQLiteStore) AddCard(ctx context.Context, p AddCardParams) (*model.Card, error) {
	front := strings.TrimSpace(p.Front)
	if front == "" {
		return nil, fmt.Errorf("%w: card front is required", ErrInvalid)
	}
	lang, err := normalizeLanguage(p.Language)
	if err != nil {
		return nil, err
	}
	deck := strings.TrimSpace(p.Deck)
	if deck == "" {
		deck = defaultDeck
	}

	now := time.Now().UTC()
	c := &model.Card{
		ID:        s.newID(),
		Deck:      deck,
		Front:     front,
		Back:      strings.TrimSpace(p.Back),
		Language:  lang,
		State:     model.CardNew,
		CreatedAt: now.Truncate(time.Second),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cards (id, deck, front, back, language, state, reps, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		c.ID, c.Deck, c.Front, nullString(c.Back), c.Language, string(c.State), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}
	return c, nil
}

// GetCard returns a card by ID, including soft-deleted ones.
func (s *SQLiteStore) GetCard(ctx context.Context, id string) (*model.Card, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCards lists live cards, soonest due first.
func (s *SQLiteStore) ListCards(ctx context.Context, p ListCardsParams) ([]model.Card, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}

	where := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	where, args = cardFilters(where, args, p.Deck, p.Language)

	if p.State != "" {
		where = append(where, "state = ?")
		args = append(args, string(p.State))
	}
	if p.DueOnly {
		where = append(where, "state != 'new'", "due IS NOT NULL", "due <= ?")
		args = append(args, formatTime(nowOr(p.Now)))
	}

	query := fmt.Sprintf(`SELECT %s FROM cards WHERE %s
		ORDER BY due IS NULL, due, rowid LIMIT ?`, cardColumns, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []model.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// RescheduleCard applies a review outcome computed by an external scheduler:
// the card moves to p.State and becomes due again after p.Interval.
func (s *SQLiteStore) RescheduleCard(ctx context.Context, p RescheduleParams) (*model.Card, error) {
	if p.State == model.CardNew || !model.ValidCardStates[p.State] {
		return nil, fmt.Errorf("%w: state %q (valid: learning, review, relearning)", ErrInvalid, p.State)
	}
	interval, err := ParseInterval(p.Interval)
	if err != nil {
		return nil, err
	}

	now := nowOr(p.Now)
	res, err := s.db.ExecContext(ctx,
		`UPDATE cards SET state = ?, due = ?, reps = reps + 1, last_reviewed_at = ?,
		        introduced_at = COALESCE(introduced_at, ?)
		 WHERE id = ? AND deleted_at IS NULL`,
		string(p.State), formatTime(now.Add(interval)), formatTime(now), formatTime(now), p.ID)
	if err != nil {
		return nil, fmt.Errorf("reschedule card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("card %s: %w", p.ID, ErrNotFound)
	}
	return s.GetCard(ctx, p.ID)
}

// RmCard soft-deletes (or hard-deletes) a card.
func (s *SQLiteStore) RmCard(ctx context.Context, p RmCardParams) error {
	var res sql.Result
	var err error
	if p.Hard {
		res, err = s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, p.ID)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE cards SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
			formatTime(time.Now()), p.ID)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("card %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

// CardCounts reports due cards and the new cards still allowed today.
func (s *SQLiteStore) CardCounts(ctx context.Context, p CardCountParams) (CardCounts, error) {
	now := nowOr(p.Now)
	var counts CardCounts

	where, args := cardFilters([]string{"deleted_at IS NULL"}, nil, p.Deck, p.Language)
	base := strings.Join(where, " AND ")

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE `+base+` AND state != 'new' AND due IS NOT NULL AND due <= ?`,
		append(args, formatTime(now))...).Scan(&counts.Due)
	if err != nil {
		return counts, fmt.Errorf("count due cards: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE `+base+` AND state = 'new'`, args...).Scan(&counts.NewAvailable)
	if err != nil {
		return counts, fmt.Errorf("count new cards: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE `+base+` AND introduced_at >= ? AND introduced_at <= ?`,
		append(args, formatTime(dayStart), formatTime(now))...).Scan(&counts.IntroducedToday)
	if err != nil {
		return counts, fmt.Errorf("count introduced cards: %w", err)
	}

	counts.New = counts.NewAvailable
	if p.NewLimit >= 0 {
		counts.New = min(counts.NewAvailable, max(p.NewLimit-counts.IntroducedToday, 0))
	}
	return counts, nil
}

func cardFilters(where []string, args []interface{}, deck, language string) ([]string, []interface{}) {
	if deck != "" {
		where = append(where, "deck = ?")
		args = append(args, deck)
	}
	if language != "" {
		where = append(where, "language = ?")
		args = append(args, language)
	}
	return where, args
}
