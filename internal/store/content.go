package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/study-session/internal/model"
	"github.com/rcliao/study-session/internal/segment"
)

// AddContent stores a story or video. A body is split into segments; when no
// duration is given, one is estimated from the body's reading length.
func (s *SQLiteStore) AddContent(ctx context.Context, p AddContentParams) (*model.ContentItem, error) {
	ct, err := model.ParseContentType(string(p.ContentType))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	lang, err := normalizeLanguage(p.Language)
	if err != nil {
		return nil, err
	}
	if p.DurationSeconds != nil && *p.DurationSeconds < 0 {
		return nil, fmt.Errorf("%w: duration must be >= 0", ErrInvalid)
	}

	pieces := segment.Split(p.Body, segment.DefaultOptions())
	duration := p.DurationSeconds
	if duration == nil && len(pieces) > 0 {
		est := segment.EstimateSeconds(pieces, lang)
		duration = &est
	}

	now := time.Now().UTC()
	item := &model.ContentItem{
		ID:              s.newID(),
		ContentType:     ct,
		Title:           title,
		Language:        lang,
		Level:           strings.TrimSpace(p.Level),
		DurationSeconds: duration,
		Body:            p.Body,
		CreatedAt:       now.Truncate(time.Second),
		SegmentCount:    len(pieces),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO content (id, content_type, title, language, level, duration_seconds, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, string(item.ContentType), item.Title, item.Language, nullString(item.Level),
		duration, nullString(item.Body), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}

	for i, piece := range pieces {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO segments (id, content_id, seq, kind, text, start_line, end_line)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.newID(), item.ID, i, piece.Kind, piece.Text, piece.StartLine, piece.EndLine)
		if err != nil {
			return nil, fmt.Errorf("insert segment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return item, nil
}

// GetContent returns a content item with its segments.
func (s *SQLiteStore) GetContent(ctx context.Context, id string) (*model.ContentItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content c WHERE c.id = ?`, id)
	item, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("content %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content_id, seq, kind, text, start_line, end_line
		 FROM segments WHERE content_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sg model.Segment
		var start, end sql.NullInt64
		if err := rows.Scan(&sg.ID, &sg.ContentID, &sg.Seq, &sg.Kind, &sg.Text, &start, &end); err != nil {
			return nil, err
		}
		sg.StartLine = int(start.Int64)
		sg.EndLine = int(end.Int64)
		item.Segments = append(item.Segments, sg)
	}
	return &item, rows.Err()
}

// ListContent lists content, oldest first. Bodies are omitted.
func (s *SQLiteStore) ListContent(ctx context.Context, p ListContentParams) ([]model.ContentItem, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}

	where := []string{"1 = 1"}
	args := []interface{}{}
	if !p.IncludeConsumed {
		where = append(where, "c.consumed_at IS NULL")
	}
	if p.Language != "" {
		where = append(where, "c.language = ?")
		args = append(args, p.Language)
	}
	if p.ContentType != "" {
		where = append(where, "c.content_type = ?")
		args = append(args, string(p.ContentType))
	}

	query := fmt.Sprintf(`SELECT %s FROM content c WHERE %s ORDER BY c.created_at, c.rowid LIMIT ?`,
		contentColumns, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ContentItem
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		item.Body = ""
		items = append(items, item)
	}
	return items, rows.Err()
}

// MarkConsumed records that the learner finished an item, so it is no
// longer recommended.
func (s *SQLiteStore) MarkConsumed(ctx context.Context, id string) (*model.ContentItem, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE content SET consumed_at = ? WHERE id = ? AND consumed_at IS NULL`,
		formatTime(time.Now()), id)
	if err != nil {
		return nil, fmt.Errorf("mark consumed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.GetContent(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.GetContent(ctx, id)
}

// Recommend picks the oldest unconsumed item in the language, trying the
// preferred content type first. It returns nil when nothing is available.
func (s *SQLiteStore) Recommend(ctx context.Context, p RecommendParams) (*model.RecommendedContent, error) {
	lang, err := normalizeLanguage(p.Language)
	if err != nil {
		return nil, err
	}
	preferred := model.ContentStory
	if p.PreferVideo {
		preferred = model.ContentVideo
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content c
		 WHERE c.consumed_at IS NULL AND c.language = ?
		 ORDER BY CASE WHEN c.content_type = ? THEN 0 ELSE 1 END, c.created_at, c.rowid
		 LIMIT 1`, lang, string(preferred))
	item, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	return &model.RecommendedContent{
		ContentType:     item.ContentType,
		ContentID:       item.ID,
		Title:           item.Title,
		Language:        item.Language,
		DurationSeconds: item.DurationSeconds,
	}, nil
}
