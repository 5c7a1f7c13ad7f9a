// Package history persists per-candidate import results in SQLite so runs
// can be inspected after the fact. It is an append-only ledger: nothing in
// the import pipeline reads it back during a run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one candidate's outcome within a run.
type Entry struct {
	ID         int64
	RunID      string
	RecordedAt time.Time
	SourcePath string
	ASIN       string
	Decision   string
	Reason     string
	TargetPath string
	Error      string
	DryRun     bool
}

// Store manages the history ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one candidate result. RecordedAt is stamped here, in UTC.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO history_entries (
            run_id, recorded_at, source_path, asin, decision, reason,
            target_path, error, dry_run
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		timestamp,
		entry.SourcePath,
		entry.ASIN,
		entry.Decision,
		entry.Reason,
		entry.TargetPath,
		entry.Error,
		entry.DryRun,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first, capped at limit.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, recorded_at, source_path, asin, decision, reason,
                target_path, error, dry_run
         FROM history_entries ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var recordedAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.RunID,
			&recordedAt,
			&entry.SourcePath,
			&entry.ASIN,
			&entry.Decision,
			&entry.Reason,
			&entry.TargetPath,
			&entry.Error,
			&entry.DryRun,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, recordedAt); parseErr == nil {
			entry.RecordedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
