package store

import (
	"database/sql"
	"time"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) InsertEvent(ev Event) error {
	if ev.Count <= 0 {
		ev.Count = 1
	}
	if ev.Ts.IsZero() {
		ev.Ts = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO events(alphabet, kind, outcome, count, ts) VALUES(?, ?, ?, ?, ?)`,
		ev.Alphabet, string(ev.Kind), string(ev.Outcome), ev.Count, ev.Ts.UTC())
	return err
}

func (s *SQLite) Stats() ([]Stats, error) {
	rows, err := s.db.Query(`
		SELECT alphabet, kind, outcome, SUM(count), MAX(ts)
		FROM events
		GROUP BY alphabet, kind, outcome
		ORDER BY alphabet, kind, outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []Stats{}
	for rows.Next() {
		var (
			st   Stats
			kind string
			out  string
			last sql.NullString
		)
		if err := rows.Scan(&st.Alphabet, &kind, &out, &st.Total, &last); err != nil {
			return nil, err
		}
		st.Kind = Kind(kind)
		st.Outcome = Outcome(out)
		if last.Valid {
			st.LastSeen = formatTs(last.String)
		}
		res = append(res, st)
	}
	return res, rows.Err()
}

// MAX() loses the column's DATETIME affinity, so the driver hands back the
// stored text rather than a time.Time.
func formatTs(v string) string {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05.999999999 -0700 MST",
	} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return v
}

// Migrate ensures schema exists
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			alphabet TEXT NOT NULL,
			kind TEXT NOT NULL,
			outcome TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 1,
			ts DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_alphabet_kind ON events(alphabet, kind, outcome);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
