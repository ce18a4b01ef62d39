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

// AddVocab tracks a word for production practice. Adding a word that already
// exists for the language flags it for practice again and fills in any
// reading or meaning it was missing.
func (s *SQLiteStore) AddVocab(ctx context.Context, p AddVocabParams) (*model.VocabWord, error) {
	word := strings.TrimSpace(p.Word)
	if word == "" {
		return nil, fmt.Errorf("%w: word is required", ErrInvalid)
	}
	lang, err := normalizeLanguage(p.Language)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO vocab (id, word, reading, meaning, language, needs_practice, practice_count, created_at)
		 VALUES (?, ?, ?, ?, ?, 1, 0, ?)
		 ON CONFLICT (word, language) DO UPDATE SET
			needs_practice = 1,
			reading = COALESCE(vocab.reading, excluded.reading),
			meaning = COALESCE(vocab.meaning, excluded.meaning)`,
		s.newID(), word, nullString(strings.TrimSpace(p.Reading)), nullString(strings.TrimSpace(p.Meaning)),
		lang, formatTime(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("upsert vocab: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+vocabColumns+` FROM vocab WHERE word = ? AND language = ?`, word, lang)
	v, err := scanVocab(row)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVocab lists tracked words, oldest first.
func (s *SQLiteStore) ListVocab(ctx context.Context, p ListVocabParams) ([]model.VocabWord, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}

	where := []string{"1 = 1"}
	args := []interface{}{}
	if p.Language != "" {
		where = append(where, "language = ?")
		args = append(args, p.Language)
	}
	if p.NeedsPractice {
		where = append(where, "needs_practice = 1")
	}

	query := fmt.Sprintf(`SELECT %s FROM vocab WHERE %s ORDER BY rowid LIMIT ?`,
		vocabColumns, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []model.VocabWord
	for rows.Next() {
		v, err := scanVocab(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, v)
	}
	return words, rows.Err()
}

// MarkPracticed clears a word's practice flag after the learner used it.
func (s *SQLiteStore) MarkPracticed(ctx context.Context, id string) (*model.VocabWord, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE vocab SET needs_practice = 0, practice_count = practice_count + 1, last_practiced_at = ?
		 WHERE id = ?`, formatTime(time.Now()), id)
	if err != nil {
		return nil, fmt.Errorf("mark practiced: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("vocab %s: %w", id, ErrNotFound)
	}

	v, err := scanVocab(s.db.QueryRowContext(ctx, `SELECT `+vocabColumns+` FROM vocab WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vocab %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// VocabToReview counts words flagged for practice in a language.
// An empty language counts all of them.
func (s *SQLiteStore) VocabToReview(ctx context.Context, language string) (int, error) {
	query := `SELECT COUNT(*) FROM vocab WHERE needs_practice = 1`
	var args []interface{}
	if language != "" {
		query += ` AND language = ?`
		args = append(args, language)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vocab: %w", err)
	}
	return n, nil
}
