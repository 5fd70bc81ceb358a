package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"docgen/internal/docgen"
)

// SQLiteStore persists run reports so past runs stay inspectable.
type SQLiteStore struct {
	db *sql.DB
}

// RunRow is one persisted run, newest first in listings.
type RunRow struct {
	ID         int64
	TargetDir  string
	StartedAt  string
	FinishedAt string
	Summary    docgen.Summary
	LogPath    string
	DryRun     bool
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			target_dir TEXT,
			started_at TEXT,
			finished_at TEXT,
			scanned INTEGER,
			generated INTEGER,
			skipped INTEGER,
			errors INTEGER,
			log_path TEXT,
			dry_run INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id INTEGER,
			module TEXT,
			filepath TEXT,
			class TEXT,
			function TEXT,
			lineno INTEGER,
			signature TEXT,
			docstring TEXT,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveReport stores a run and its per-entity results, returning the run id.
func (s *SQLiteStore) SaveReport(ctx context.Context, r *docgen.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (target_dir, started_at, finished_at, scanned, generated, skipped, errors, log_path, dry_run)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.TargetDir, r.StartedAt, r.FinishedAt,
		r.Summary.Scanned, r.Summary.Generated, r.Summary.Skipped, r.Summary.Errors,
		r.LogPath, boolToInt(r.DryRun),
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, module, filepath, class, function, lineno, signature, docstring)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, item := range r.Results {
		if _, err := stmt.ExecContext(ctx,
			runID, item.Module, item.Path, item.Class, item.Function,
			item.Line, item.Signature, item.Docstring,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, target_dir, started_at, finished_at, scanned, generated, skipped, errors, log_path, dry_run
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		var dryRun int
		if err := rows.Scan(&r.ID, &r.TargetDir, &r.StartedAt, &r.FinishedAt,
			&r.Summary.Scanned, &r.Summary.Generated, &r.Summary.Skipped, &r.Summary.Errors,
			&r.LogPath, &dryRun); err != nil {
			return nil, err
		}
		r.DryRun = dryRun != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ResultsForRun returns the per-entity results of one run in insert order.
func (s *SQLiteStore) ResultsForRun(ctx context.Context, runID int64) ([]docgen.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT module, filepath, class, function, lineno, signature, docstring
		 FROM results WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []docgen.Result
	for rows.Next() {
		var item docgen.Result
		if err := rows.Scan(&item.Module, &item.Path, &item.Class, &item.Function,
			&item.Line, &item.Signature, &item.Docstring); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
