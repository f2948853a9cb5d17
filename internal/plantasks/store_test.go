package plantasks

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/t4tarzan/seaclaw-platform/internal/domainerr"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSeedsDefaultTasks(t *testing.T) {
	s := openTestStore(t)
	tasks, err := s.Query(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(tasks) != len(seedTasks) {
		t.Fatalf("expected %d seeded tasks, got %d", len(seedTasks), len(tasks))
	}
	if tasks[0].Phase != "P1" || tasks[0].TaskID != "P1-01" {
		t.Fatalf("expected ordering by (phase, task_id), got first row %+v", tasks[0])
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	s1, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	s1.Close()

	s2, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()

	tasks, err := s2.Query(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(tasks) != len(seedTasks) {
		t.Fatalf("reopen should not duplicate seed rows: got %d want %d", len(tasks), len(seedTasks))
	}
}

func TestQueryFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	byPhase, err := s.Query(ctx, Filter{Phase: "P4"})
	if err != nil {
		t.Fatalf("Query by phase: %v", err)
	}
	for _, tk := range byPhase {
		if tk.Phase != "P4" {
			t.Fatalf("filter leaked non-matching phase: %+v", tk)
		}
	}
	if len(byPhase) == 0 {
		t.Fatalf("expected P4 tasks in seed data")
	}

	bySprint, err := s.Query(ctx, Filter{Sprint: 1})
	if err != nil {
		t.Fatalf("Query by sprint: %v", err)
	}
	for _, tk := range bySprint {
		if tk.Sprint != 1 {
			t.Fatalf("filter leaked non-matching sprint: %+v", tk)
		}
	}

	byStatus, err := s.Query(ctx, Filter{Status: "done"})
	if err != nil {
		t.Fatalf("Query by status: %v", err)
	}
	if len(byStatus) != 0 {
		t.Fatalf("no seeded task should start as done, got %d", len(byStatus))
	}
}

func TestUpdateStatusAndNotes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	updated, err := s.Update(ctx, "P1-01", "in_progress", "started work")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != "in_progress" || updated.Notes != "started work" {
		t.Fatalf("unexpected task after update: %+v", updated)
	}

	again, err := s.Update(ctx, "P1-01", "", "")
	if err != nil {
		t.Fatalf("Update with no-op fields: %v", err)
	}
	if again.Status != "in_progress" || again.Notes != "started work" {
		t.Fatalf("empty fields should leave prior values untouched: %+v", again)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Update(context.Background(), "P1-01", "sideways", "")
	de, ok := domainerr.As(err)
	if !ok || de.Kind != domainerr.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestUpdateUnknownTaskNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Update(context.Background(), "does-not-exist", "done", "")
	de, ok := domainerr.As(err)
	if !ok || de.Kind != domainerr.KindNotFound {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}
