// Package plantasks implements the Plan Tracker Store (spec §3, §4.3): a
// relational store of development-plan tasks, seeded once on first boot,
// supporting filtered reads and narrow status/notes mutation.
//
// Grounded on apps/ReleaseParty/backend/internal/store (database/sql +
// modernc.org/sqlite, a migrate() step run at Open, one *sql.DB with
// SetMaxOpenConns(1) since sqlite serializes writes anyway).
package plantasks

import "time"

// Task is one plan-task row (spec §3 "Plan Task").
type Task struct {
	Phase     string    `json:"phase"`
	TaskID    string    `json:"task_id"`
	Sprint    int       `json:"sprint"`
	Title     string    `json:"title"`
	Effort    string    `json:"effort"`
	Status    string    `json:"status"`
	Files     string    `json:"files"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidEffort and ValidStatus mirror the sqlite CHECK constraints from the
// original schema.
var (
	ValidEffort = map[string]bool{"S": true, "M": true, "H": true}
	ValidStatus = map[string]bool{"todo": true, "in_progress": true, "done": true, "blocked": true}
)

// MutableFields is the set of fields a PATCH may touch (spec §4.3 "Mutation is
// limited to status and notes").
var MutableFields = map[string]bool{"status": true, "notes": true}
