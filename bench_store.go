package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// benchStore persists (digits, seconds) samples in a local SQLite database.
// Re-measuring a digit count overwrites the previous sample: the newest
// timing for a size is the one the estimator should trust.
type benchStore struct {
	db   *sql.DB
	host string
}

func openBenchStore(path string) (*benchStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_journal=WAL")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS benchmarks (
			digits INTEGER PRIMARY KEY,
			seconds REAL NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := addBenchmarksHostColumn(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := addBenchmarksRecordedAtColumn(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	host, err := os.Hostname()
	if err != nil {
		host = ""
	}
	return &benchStore{db: db, host: host}, nil
}

func addBenchmarksHostColumn(db *sql.DB) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec("ALTER TABLE benchmarks ADD COLUMN host TEXT NOT NULL DEFAULT ''")
	if err != nil && !strings.Contains(err.Error(), "duplicate column name") {
		return err
	}
	return nil
}

func addBenchmarksRecordedAtColumn(db *sql.DB) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec("ALTER TABLE benchmarks ADD COLUMN recorded_at TEXT NOT NULL DEFAULT ''")
	if err != nil && !strings.Contains(err.Error(), "duplicate column name") {
		return err
	}
	return nil
}

// Load returns every recorded sample. Degenerate rows are loaded as-is; the
// estimator vets them and reports why they were skipped.
func (s *benchStore) Load() (benchmarkSet, error) {
	if s == nil || s.db == nil {
		return benchmarkSet{}, nil
	}
	rows, err := s.db.Query("SELECT digits, seconds FROM benchmarks")
	if err != nil {
		return nil, fmt.Errorf("load benchmarks: %w", err)
	}
	defer rows.Close()

	set := benchmarkSet{}
	for rows.Next() {
		var digits int
		var seconds float64
		if err := rows.Scan(&digits, &seconds); err != nil {
			return nil, fmt.Errorf("scan benchmark row: %w", err)
		}
		set[digits] = seconds
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load benchmarks: %w", err)
	}
	return set, nil
}

// Record upserts one observed sample, tagged with the host that produced it.
func (s *benchStore) Record(digits int, seconds float64) error {
	if s == nil || s.db == nil {
		return nil
	}
	recordedAt := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO benchmarks (digits, seconds, host, recorded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(digits) DO UPDATE SET
			seconds = excluded.seconds,
			host = excluded.host,
			recorded_at = excluded.recorded_at
	`, digits, seconds, s.host, recordedAt)
	if err != nil {
		return fmt.Errorf("record benchmark digits=%d: %w", digits, err)
	}
	return nil
}

// Save upserts every entry of the set. Existing samples for other digit
// counts are kept.
func (s *benchStore) Save(set benchmarkSet) error {
	for digits, seconds := range set {
		if err := s.Record(digits, seconds); err != nil {
			return err
		}
	}
	return nil
}

// NewestSampleAge reports how long ago the most recent sample was recorded.
// Rows from databases predating the recorded_at column are ignored.
func (s *benchStore) NewestSampleAge() (time.Duration, bool) {
	if s == nil || s.db == nil {
		return 0, false
	}
	var newest sql.NullString
	err := s.db.QueryRow(
		"SELECT MAX(recorded_at) FROM benchmarks WHERE recorded_at != ''",
	).Scan(&newest)
	if err != nil || !newest.Valid || newest.String == "" {
		return 0, false
	}
	ts, err := time.Parse(time.RFC3339, newest.String)
	if err != nil {
		return 0, false
	}
	return time.Since(ts), true
}

func (s *benchStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
