package plantasks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
)

// Store is the Plan Tracker Store (spec §4.3): a sqlite-backed table of plan
// tasks, migrated and seeded once at Open, read through filtered queries and
// mutated only through a narrow status/notes update.
//
// Grounded on apps/ReleaseParty/backend/internal/store/store.go: one *sql.DB
// over modernc.org/sqlite (pure Go, no cgo), a migrate() step of
// CREATE TABLE IF NOT EXISTS plus PRAGMA journal_mode=WAL, SetMaxOpenConns(1)
// since sqlite serializes writers regardless.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS plan_tasks (
	task_id     TEXT PRIMARY KEY,
	phase       TEXT NOT NULL,
	sprint      INTEGER NOT NULL,
	title       TEXT NOT NULL,
	effort      TEXT NOT NULL CHECK (effort IN ('S','M','H')),
	status      TEXT NOT NULL CHECK (status IN ('todo','in_progress','done','blocked')),
	files       TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
`

// Open opens (creating if necessary) the sqlite database at path, runs the
// schema migration, and seeds the default plan tasks if the table is empty.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("plantasks: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("plantasks: set journal mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("plantasks: migrate: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedIfEmpty(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) seedIfEmpty(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM plan_tasks").Scan(&count); err != nil {
		return fmt.Errorf("plantasks: count: %w", err)
	}
	if count > 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("plantasks: seed begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO plan_tasks
			(task_id, phase, sprint, title, effort, status, files, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("plantasks: seed prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range seedTasks {
		if _, err := stmt.ExecContext(ctx, t.TaskID, t.Phase, t.Sprint, t.Title, t.Effort, t.Status, t.Files, t.Notes, now, now); err != nil {
			return fmt.Errorf("plantasks: seed insert %s: %w", t.TaskID, err)
		}
	}
	return tx.Commit()
}

// Filter narrows Query's result set; zero-value fields are ignored.
type Filter struct {
	Phase  string
	Sprint int
	Status string
}

// Query returns plan tasks matching filter, ordered by (phase, task_id) per
// spec §4.3.
func (s *Store) Query(ctx context.Context, f Filter) ([]Task, error) {
	q := `SELECT task_id, phase, sprint, title, effort, status, files, notes, created_at, updated_at
	      FROM plan_tasks WHERE 1=1`
	var args []any
	if f.Phase != "" {
		q += " AND phase = ?"
		args = append(args, f.Phase)
	}
	if f.Sprint != 0 {
		q += " AND sprint = ?"
		args = append(args, f.Sprint)
	}
	if f.Status != "" {
		q += " AND status = ?"
		args = append(args, f.Status)
	}
	q += " ORDER BY phase, task_id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("plantasks: query: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		var createdAt, updatedAt string
		if err := rows.Scan(&t.TaskID, &t.Phase, &t.Sprint, &t.Title, &t.Effort, &t.Status, &t.Files, &t.Notes, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("plantasks: scan: %w", err)
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update mutates only status and/or notes on an existing task (spec §4.3
// "Mutation is limited to status and notes"); empty strings mean "leave
// unchanged". Returns domainerr.NotFound if taskID does not exist, or
// domainerr.Validation if status is non-empty and not one of the known
// values.
func (s *Store) Update(ctx context.Context, taskID string, status, notes string) (Task, error) {
	if status != "" && !ValidStatus[status] {
		return Task{}, domainerr.Validation("invalid status %q", status)
	}

	var existing Task
	var createdAt, updatedAt string
	row := s.db.QueryRowContext(ctx, `
		SELECT task_id, phase, sprint, title, effort, status, files, notes, created_at, updated_at
		FROM plan_tasks WHERE task_id = ?`, taskID)
	if err := row.Scan(&existing.TaskID, &existing.Phase, &existing.Sprint, &existing.Title,
		&existing.Effort, &existing.Status, &existing.Files, &existing.Notes, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Task{}, domainerr.NotFound("plan task %q not found", taskID)
		}
		return Task{}, fmt.Errorf("plantasks: lookup %s: %w", taskID, err)
	}

	newStatus := existing.Status
	if status != "" {
		newStatus = status
	}
	newNotes := existing.Notes
	if notes != "" {
		newNotes = notes
	}
	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := s.db.ExecContext(ctx, `
		UPDATE plan_tasks SET status = ?, notes = ?, updated_at = ? WHERE task_id = ?`,
		newStatus, newNotes, now, taskID); err != nil {
		return Task{}, fmt.Errorf("plantasks: update %s: %w", taskID, err)
	}

	existing.Status = newStatus
	existing.Notes = newNotes
	existing.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	existing.UpdatedAt, _ = time.Parse(time.RFC3339, now)
	return existing, nil
}
