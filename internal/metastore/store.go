package metastore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"openrecorder/internal/library"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; mismatched databases are rejected rather than migrated.
const schemaVersion = 1

// Store persists per-source-path transcription metadata backed by SQLite.
// It is what turns the analytics aggregator's caller-supplied metadata map
// into something that survives restarts.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the metadata database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create metadata directory: %w", err)
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
	if err := store.initSchema(context.Background()); err != nil {
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

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("metadata db has schema version %d, expected %d (delete %s to reset)",
			version, schemaVersion, s.path)
	}
	return nil
}

// Record upserts the metadata row for a source path.
func (s *Store) Record(ctx context.Context, path, language string, durationSeconds *float64, runID string) error {
	var duration sql.NullFloat64
	if durationSeconds != nil {
		duration = sql.NullFloat64{Float64: *durationSeconds, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcriptions (path, language, duration_seconds, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			language = excluded.language,
			duration_seconds = excluded.duration_seconds,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at`,
		path, language, duration, runID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record transcription meta: %w", err)
	}
	return nil
}

// MetaByPath loads all rows as the metadata map the analytics aggregator
// consumes.
func (s *Store) MetaByPath(ctx context.Context) (map[string]library.MetaItem, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path, language, duration_seconds FROM transcriptions")
	if err != nil {
		return nil, fmt.Errorf("load transcription meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]library.MetaItem)
	for rows.Next() {
		var (
			path     string
			language string
			duration sql.NullFloat64
		)
		if err := rows.Scan(&path, &language, &duration); err != nil {
			return nil, fmt.Errorf("scan transcription meta: %w", err)
		}
		item := library.MetaItem{Language: language}
		if duration.Valid {
			seconds := duration.Float64
			item.TranscriptionSeconds = &seconds
		}
		meta[path] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcription meta: %w", err)
	}
	return meta, nil
}
