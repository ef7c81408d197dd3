package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tubeharvest/releasekit/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
)

// Store is a SQLite-backed audit log of publish runs.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.releasekit/data/releasekit.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".releasekit", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "releasekit.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
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

	// Sort and run migrations
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

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// stepRow is the JSON shape of one step outcome in the steps column.
// Errors are flattened to their message.
type stepRow struct {
	Step     string `json:"step"`
	Error    string `json:"error,omitempty"`
	Duration int64  `json:"duration_ms"`
	Detail   string `json:"detail,omitempty"`
}

// SaveRun records a completed publish run.
func (s *historyStore) SaveRun(ctx context.Context, run *domain.PublishRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	steps := make([]stepRow, 0, len(run.Steps))
	for _, step := range run.Steps {
		row := stepRow{
			Step:     string(step.Step),
			Duration: step.Duration.Milliseconds(),
			Detail:   step.Detail,
		}
		if step.Err != nil {
			row.Error = step.Err.Error()
		}
		steps = append(steps, row)
	}

	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return fmt.Errorf("marshalling steps: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO publish_runs (id, version, target, started_at, finished_at, succeeded, steps)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			version = excluded.version,
			target = excluded.target,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			succeeded = excluded.succeeded,
			steps = excluded.steps
	`, run.ID, run.Version, string(run.Target),
		run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Succeeded, string(stepsJSON))

	if err != nil {
		return fmt.Errorf("saving publish run: %w", err)
	}
	return nil
}

// ListRuns returns recorded runs, newest first.
func (s *historyStore) ListRuns(ctx context.Context, limit int) ([]domain.PublishRun, error) {
	query := `
		SELECT id, version, target, started_at, finished_at, succeeded, steps
		FROM publish_runs
		ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying publish runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.PublishRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publish runs: %w", err)
	}

	return runs, nil
}

// scanRun scans a publish run from *sql.Rows.
func scanRun(rows *sql.Rows) (*domain.PublishRun, error) {
	var run domain.PublishRun
	var target, stepsJSON string
	var startedAt, finishedAt sql.NullTime

	if err := rows.Scan(&run.ID, &run.Version, &target,
		&startedAt, &finishedAt, &run.Succeeded, &stepsJSON); err != nil {
		return nil, fmt.Errorf("scanning publish run: %w", err)
	}

	run.Target = domain.PublishTarget(target)
	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	var steps []stepRow
	if err := json.Unmarshal([]byte(stepsJSON), &steps); err != nil {
		return nil, fmt.Errorf("unmarshaling steps: %w", err)
	}
	for _, row := range steps {
		result := domain.StepResult{
			Step:     domain.StepName(row.Step),
			Duration: time.Duration(row.Duration) * time.Millisecond,
			Detail:   row.Detail,
		}
		if row.Error != "" {
			result.Err = errors.New(row.Error)
		}
		run.Steps = append(run.Steps, result)
	}

	return &run, nil
}
