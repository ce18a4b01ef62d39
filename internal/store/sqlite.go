package store

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/study-session/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cards (
		id               TEXT PRIMARY KEY,
		deck             TEXT NOT NULL DEFAULT 'default',
		front            TEXT NOT NULL,
		back             TEXT,
		language         TEXT NOT NULL,
		state            TEXT NOT NULL DEFAULT 'new',
		due              TEXT,
		reps             INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		introduced_at    TEXT,
		last_reviewed_at TEXT,
		deleted_at       TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_cards_state_due ON cards(state, due);
	CREATE INDEX IF NOT EXISTS idx_cards_deck ON cards(deck, language);
	CREATE INDEX IF NOT EXISTS idx_cards_deleted ON cards(deleted_at);

	CREATE TABLE IF NOT EXISTS vocab (
		id                TEXT PRIMARY KEY,
		word              TEXT NOT NULL,
		reading           TEXT,
		meaning           TEXT,
		language          TEXT NOT NULL,
		needs_practice    INTEGER NOT NULL DEFAULT 1,
		practice_count    INTEGER NOT NULL DEFAULT 0,
		last_practiced_at TEXT,
		created_at        TEXT NOT NULL,
		UNIQUE (word, language)
	);
	CREATE INDEX IF NOT EXISTS idx_vocab_practice ON vocab(language, needs_practice);

	CREATE TABLE IF NOT EXISTS content (
		id               TEXT PRIMARY KEY,
		content_type     TEXT NOT NULL,
		title            TEXT NOT NULL,
		language         TEXT NOT NULL,
		level            TEXT,
		duration_seconds INTEGER,
		body             TEXT,
		consumed_at      TEXT,
		created_at       TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_content_pick ON content(language, consumed_at, content_type);

	CREATE TABLE IF NOT EXISTS segments (
		id          TEXT PRIMARY KEY,
		content_id  TEXT NOT NULL REFERENCES content(id),
		seq         INTEGER NOT NULL,
		kind        TEXT NOT NULL,
		text        TEXT NOT NULL,
		start_line  INTEGER,
		end_line    INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_segments_content ON segments(content_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

const cardColumns = `id, deck, front, back, language, state, due, reps,
	created_at, introduced_at, last_reviewed_at, deleted_at`

func scanCard(row scanner) (model.Card, error) {
	var c model.Card
	var back, due, introduced, lastReviewed, deleted sql.NullString
	var state, createdAt string

	err := row.Scan(&c.ID, &c.Deck, &c.Front, &back, &c.Language, &state, &due, &c.Reps,
		&createdAt, &introduced, &lastReviewed, &deleted)
	if err != nil {
		return c, err
	}

	c.State = model.CardState(state)
	c.Back = back.String
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.Due = parseTimePtr(due)
	c.IntroducedAt = parseTimePtr(introduced)
	c.LastReviewedAt = parseTimePtr(lastReviewed)
	c.DeletedAt = parseTimePtr(deleted)
	return c, nil
}

const vocabColumns = `id, word, reading, meaning, language, needs_practice, practice_count,
	last_practiced_at, created_at`

func scanVocab(row scanner) (model.VocabWord, error) {
	var v model.VocabWord
	var reading, meaning, lastPracticed sql.NullString
	var createdAt string

	err := row.Scan(&v.ID, &v.Word, &reading, &meaning, &v.Language, &v.NeedsPractice,
		&v.PracticeCount, &lastPracticed, &createdAt)
	if err != nil {
		return v, err
	}

	v.Reading = reading.String
	v.Meaning = meaning.String
	v.LastPracticedAt = parseTimePtr(lastPracticed)
	v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return v, nil
}

const contentColumns = `c.id, c.content_type, c.title, c.language, c.level, c.duration_seconds,
	c.body, c.consumed_at, c.created_at,
	(SELECT COUNT(*) FROM segments sg WHERE sg.content_id = c.id)`

func scanContent(row scanner) (model.ContentItem, error) {
	var c model.ContentItem
	var level, body, consumed sql.NullString
	var duration sql.NullInt64
	var contentType, createdAt string

	err := row.Scan(&c.ID, &contentType, &c.Title, &c.Language, &level, &duration,
		&body, &consumed, &createdAt, &c.SegmentCount)
	if err != nil {
		return c, err
	}

	c.ContentType = model.ContentType(contentType)
	c.Level = level.String
	c.Body = body.String
	if duration.Valid {
		d := int(duration.Int64)
		c.DurationSeconds = &d
	}
	c.ConsumedAt = parseTimePtr(consumed)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return c, nil
}

func parseTimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func normalizeLanguage(lang string) (string, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return model.DefaultLanguage, nil
	}
	if !model.ValidLanguages[lang] {
		return "", fmt.Errorf("%w: unsupported language %q (valid: japanese, english, french)", ErrInvalid, lang)
	}
	return lang, nil
}

// intervalRegex matches review intervals like "7d", "24h", "30m".
var intervalRegex = regexp.MustCompile(`^(\d+)([dhms])$`)

// ParseInterval parses an interval string like "7d", "24h", "30m" into a time.Duration.
func ParseInterval(s string) (time.Duration, error) {
	m := intervalRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: interval %q (use e.g. 7d, 24h, 30m, 60s)", ErrInvalid, s)
	}
	n, _ := strconv.Atoi(m[1])
	switch m[2] {
	case "d":
		return time.Duration(n) * 24 * time.Hour, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "s":
		return time.Duration(n) * time.Second, nil
	}
	return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalid, m[2])
}
