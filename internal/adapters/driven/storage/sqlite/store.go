package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hanbit-labs/newsrank-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RunStore = (*Store)(nil)

// Store is the SQLite-backed run audit store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.newsrank/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".newsrank", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SaveRun stores or updates a run.
func (s *Store) SaveRun(ctx context.Context, run domain.Run) error {
	var endedAt any
	if !run.EndedAt.IsZero() {
		endedAt = run.EndedAt.UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, window, status, started_at, ended_at, error)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			ended_at = excluded.ended_at,
			error = excluded.error
	`, run.ID, run.Window, string(run.Status), run.StartedAt.UTC(), endedAt, run.Error)

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// SaveStageResult stores one stage's audit record.
func (s *Store) SaveStageResult(ctx context.Context, result domain.StageResult) error {
	success := 0
	if result.Success {
		success = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stage_results (run_id, stage, in_count, out_count, duration_ms, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, stage) DO UPDATE SET
			in_count = excluded.in_count,
			out_count = excluded.out_count,
			duration_ms = excluded.duration_ms,
			success = excluded.success,
			error = excluded.error
	`, result.RunID, string(result.Stage), result.InCount, result.OutCount,
		result.Duration.Milliseconds(), success, result.Error)

	if err != nil {
		return fmt.Errorf("saving stage result: %w", err)
	}
	return nil
}

// GetRun retrieves a run with its stage results.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.Run, []domain.StageResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, window, status, started_at, ended_at, error
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("getting run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, stage, in_count, out_count, duration_ms, success, error
		FROM stage_results WHERE run_id = ?
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("getting stage results: %w", err)
	}
	defer rows.Close()

	var results []domain.StageResult
	for rows.Next() {
		var r domain.StageResult
		var stage string
		var durationMS int64
		var success int
		if err := rows.Scan(&r.RunID, &stage, &r.InCount, &r.OutCount, &durationMS, &success, &r.Error); err != nil {
			return nil, nil, fmt.Errorf("scanning stage result: %w", err)
		}
		r.Stage = domain.Stage(stage)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Success = success == 1
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating stage results: %w", err)
	}

	// Return results in pipeline order.
	order := make(map[domain.Stage]int, len(domain.Stages()))
	for i, stage := range domain.Stages() {
		order[stage] = i
	}
	sort.SliceStable(results, func(i, j int) bool {
		return order[results[i].Stage] < order[results[j].Stage]
	})

	return run, results, nil
}

// ListRuns returns runs ordered by start time, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	query := `
		SELECT id, window, status, started_at, ended_at, error
		FROM runs ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanRun.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var status string
	var endedAt sql.NullTime
	if err := row.Scan(&run.ID, &run.Window, &status, &run.StartedAt, &endedAt, &run.Error); err != nil {
		return nil, err
	}
	run.Status = domain.RunStatus(status)
	if endedAt.Valid {
		run.EndedAt = endedAt.Time
	}
	return &run, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
