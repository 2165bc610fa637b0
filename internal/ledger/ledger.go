package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users clear the ledger database after a mismatch.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("ledger: schema version mismatch")

// FileRecord summarizes one source file within a run.
type FileRecord struct {
	Source     string
	ChunkCount int
	Failed     bool
	Detail     string
}

// RunRecord summarizes one completed pipeline run.
type RunRecord struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	ReportPath   string
	FileCount    int
	ChunkCount   int
	FailureCount int
	Files        []FileRecord
}

// Store persists run history backed by SQLite. It is bookkeeping only; runs
// never resume from it.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
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

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)", ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// RecordRun inserts a completed run and its per-file rows in one transaction.
func (s *Store) RecordRun(ctx context.Context, record RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, report_path,
            file_count, chunk_count, failure_count
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.StartedAt.UTC().Format(time.RFC3339Nano),
		record.FinishedAt.UTC().Format(time.RFC3339Nano),
		record.ReportPath,
		record.FileCount,
		record.ChunkCount,
		record.FailureCount,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for position, file := range record.Files {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO run_files (run_id, position, source, chunk_count, failed, detail)
             VALUES (?, ?, ?, ?, ?, ?)`,
			record.ID,
			position,
			file.Source,
			file.ChunkCount,
			boolToInt(file.Failed),
			nullableString(file.Detail),
		)
		if err != nil {
			return fmt.Errorf("insert run file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, started_at, finished_at, report_path,
                     file_count, chunk_count, failure_count
              FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		var started, finished string
		if err := rows.Scan(
			&record.ID, &started, &finished, &record.ReportPath,
			&record.FileCount, &record.ChunkCount, &record.FailureCount,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if record.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if record.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// RunFiles returns the per-file rows for a run in discovery order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT source, chunk_count, failed, detail
         FROM run_files WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var file FileRecord
		var failed int
		var detail sql.NullString
		if err := rows.Scan(&file.Source, &file.ChunkCount, &failed, &detail); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		file.Failed = failed != 0
		file.Detail = detail.String
		files = append(files, file)
	}
	return files, rows.Err()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
