// Package history keeps a durable record of extraction runs in a
// SQLite database. The web UI's stats panel reads from it; the batch
// driver, the CLI, and the upload handler write to it when configured.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // database/sql driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	headings INTEGER NOT NULL DEFAULT 0,
	method TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

// Run is one recorded extraction.
type Run struct {
	ID       int64
	Filename string
	Title    string
	Headings int
	Method   string
	Duration time.Duration
	Error    string // empty on success
	Created  time.Time
}

// Stats aggregates the stored runs.
type Stats struct {
	Total  int64
	Failed int64
}

// Store persists extraction runs.
type Store struct {
	db *sql.DB
}

// Open opens the history database at path, creating it and applying
// the schema if needed. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// SQLite serializes writers anyway; a single pooled connection
	// avoids SQLITE_BUSY from concurrent batch workers and keeps
	// :memory: stores on one coherent database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one run. A zero Created means now.
func (s *Store) Record(ctx context.Context, r Run) error {
	created := r.Created
	if created.IsZero() {
		created = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (filename, title, headings, method, duration_ms, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Filename, r.Title, r.Headings, r.Method, r.Duration.Milliseconds(), r.Error, created.Unix())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first. A non-positive limit
// defaults to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, title, headings, method, duration_ms, error, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs, created int64
		if err := rows.Scan(&r.ID, &r.Filename, &r.Title, &r.Headings, &r.Method, &durationMs, &r.Error, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.Created = time.Unix(created, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Stats reports totals over all stored runs.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(error != ''), 0) FROM runs`).Scan(&st.Total, &st.Failed)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return st, nil
}
