package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"romclerk/internal/config"
	"romclerk/internal/services"
)

// Store manages rename history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// ErrAmbiguousRun indicates a run identifier prefix matched more than one run.
var ErrAmbiguousRun = errors.New("run identifier matches multiple runs")

// Open initializes or connects to the journal database.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := cfg.Journal.Path
	if dbPath == "" {
		return nil, services.Wrap(services.ErrConfiguration, "journal", "open",
			"No journal path configured", nil)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, services.Wrap(services.ErrJournal, "journal", "open",
			"Could not create the journal directory", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, services.Wrap(services.ErrJournal, "journal", "open",
			fmt.Sprintf("Could not open %s", dbPath), err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, services.Wrap(services.ErrJournal, "journal", "open",
				fmt.Sprintf("Could not apply %q", pragma), execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, services.Wrap(services.ErrJournal, "journal", "init schema",
			"Journal schema could not be prepared", err)
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
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// BeginRun records the start of a rename run and returns it with a fresh identifier.
func (s *Store) BeginRun(ctx context.Context, rootDir string, planned int) (*Run, error) {
	now := time.Now().UTC()
	run := &Run{
		ID:        uuid.NewString(),
		RootDir:   rootDir,
		StartedAt: now,
		Planned:   planned,
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, root_dir, started_at, planned, applied, failed, undone)
         VALUES (?, ?, ?, ?, 0, 0, 0)`,
		run.ID,
		run.RootDir,
		now.Format(time.RFC3339Nano),
		planned,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordRename appends an applied rename to a run. Position assigns the
// replay order used by undo.
func (s *Store) RecordRename(ctx context.Context, rename Rename) error {
	if rename.RunID == "" {
		return errors.New("rename has no run id")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO renames (run_id, position, action, old_name, new_name, checksum, source)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rename.RunID,
		rename.Position,
		rename.Action,
		rename.OldName,
		rename.NewName,
		rename.Checksum,
		rename.Source,
	)
	if err != nil {
		return fmt.Errorf("insert rename: %w", err)
	}
	return nil
}

// FinishRun closes out a run with its final counts.
func (s *Store) FinishRun(ctx context.Context, runID string, applied, failed int) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, applied = ?, failed = ? WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		applied,
		failed,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// MarkUndone flags a run as reverted.
func (s *Store) MarkUndone(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE runs SET undone = 1 WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("mark run undone: %w", err)
	}
	return nil
}

// LastRun returns the most recently started run, or nil when the journal is
// empty. Recency follows insertion order via rowid; RFC3339Nano strings do
// not sort reliably at sub-second resolution.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY rowid DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	return run, nil
}

// RunByID resolves a run by full identifier or unique prefix. A prefix that
// matches several runs yields ErrAmbiguousRun; no match yields nil.
func (s *Store) RunByID(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id)
	run, err := scanRun(row)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run by id: %w", err)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+runColumns+` FROM runs WHERE run_id LIKE ? ESCAPE '\' ORDER BY rowid DESC LIMIT 2`,
		escapeLike(id)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("run by prefix: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousRun, id)
	}
}

// RecentRuns lists runs newest first, capped at limit (or all when limit <= 0).
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY rowid DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RenamesForRun returns the applied renames for a run in apply order.
func (s *Store) RenamesForRun(ctx context.Context, runID string) ([]Rename, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, position, action, old_name, new_name, checksum, source
         FROM renames WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query renames: %w", err)
	}
	defer rows.Close()

	var renames []Rename
	for rows.Next() {
		var entry Rename
		if err := rows.Scan(
			&entry.RunID,
			&entry.Position,
			&entry.Action,
			&entry.OldName,
			&entry.NewName,
			&entry.Checksum,
			&entry.Source,
		); err != nil {
			return nil, err
		}
		renames = append(renames, entry)
	}
	return renames, rows.Err()
}

const runColumns = "run_id, root_dir, started_at, finished_at, planned, applied, failed, undone"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id          string
		rootDir     string
		startedRaw  string
		finishedRaw sql.NullString
		planned     int
		applied     int
		failed      int
		undone      int
	)

	if err := scanner.Scan(&id, &rootDir, &startedRaw, &finishedRaw, &planned, &applied, &failed, &undone); err != nil {
		return nil, err
	}

	run := &Run{
		ID:      id,
		RootDir: rootDir,
		Planned: planned,
		Applied: applied,
		Failed:  failed,
		Undone:  undone != 0,
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func escapeLike(value string) string {
	replaced := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '%', '_', '\\':
			replaced = append(replaced, '\\')
		}
		replaced = append(replaced, value[i])
	}
	return string(replaced)
}
