package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string         `json:"db_path"`
	DBSizeBytes   int64          `json:"db_size_bytes"`
	Cards         int            `json:"cards"`
	CardsByState  map[string]int `json:"cards_by_state"`
	DeletedCards  int            `json:"deleted_cards"`
	Vocab         int            `json:"vocab"`
	VocabPractice int            `json:"vocab_needs_practice"`
	Content       int            `json:"content"`
	ContentByType map[string]int `json:"content_by_type"`
	Consumed      int            `json:"content_consumed"`
	Segments      int            `json:"segments"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{
		DBPath:        dbPath,
		CardsByState:  map[string]int{},
		ContentByType: map[string]int{},
	}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM cards WHERE deleted_at IS NULL`, &st.Cards},
		{`SELECT COUNT(*) FROM cards WHERE deleted_at IS NOT NULL`, &st.DeletedCards},
		{`SELECT COUNT(*) FROM vocab`, &st.Vocab},
		{`SELECT COUNT(*) FROM vocab WHERE needs_practice = 1`, &st.VocabPractice},
		{`SELECT COUNT(*) FROM content`, &st.Content},
		{`SELECT COUNT(*) FROM content WHERE consumed_at IS NOT NULL`, &st.Consumed},
		{`SELECT COUNT(*) FROM segments`, &st.Segments},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return st, err
		}
	}

	if err := s.groupCounts(ctx, `SELECT state, COUNT(*) FROM cards WHERE deleted_at IS NULL GROUP BY state`, st.CardsByState); err != nil {
		return st, err
	}
	if err := s.groupCounts(ctx, `SELECT content_type, COUNT(*) FROM content GROUP BY content_type`, st.ContentByType); err != nil {
		return st, err
	}
	return st, nil
}

func (s *SQLiteStore) groupCounts(ctx context.Context, query string, into map[string]int) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
	}
	return rows.Err()
}
