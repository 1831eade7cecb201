package store

import (
	"context"
	"time"

	"github.com/amrit/lexiq/internal/proficiency"
)

// Txn is the record access surface available inside an atomic
// read-modify-write scope. All reads and writes through a Txn commit
// together or not at all.
type Txn interface {
	// GetOrCreate returns the record for a scope, creating it at the
	// configured prior if absent.
	GetOrCreate(ctx context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error)

	// Save stages an updated record for commit.
	Save(ctx context.Context, rec *proficiency.Record) error
}

// ProficiencyRepo maps (student, level, scope) to proficiency records
// with get-or-create-with-default-prior semantics.
type ProficiencyRepo interface {
	// Get returns the record for a scope, or nil (no error) if the
	// student has no history there yet.
	Get(ctx context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error)

	// GetOrCreate returns the record for a scope, creating it at the
	// configured prior if absent.
	GetOrCreate(ctx context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error)

	// Save persists a record. Storage failures surface as *StorageError.
	Save(ctx context.Context, rec *proficiency.Record) error

	// BulkInitialize lazily creates the domain, module, and item records
	// for a first session. Idempotent: existing evidence is untouched.
	BulkInitialize(ctx context.Context, studentID, moduleID, domain string, itemIDs []string) error

	// ItemsUnderModule returns all item-level records owned by a module.
	ItemsUnderModule(ctx context.Context, studentID, moduleID string) ([]*proficiency.Record, error)

	// AllForStudent returns every record tracked for a student.
	AllForStudent(ctx context.Context, studentID string) ([]*proficiency.Record, error)

	// Reset re-initializes all of a student's records to the prior.
	// Records are never deleted.
	Reset(ctx context.Context, studentID string) error

	// InTx runs fn inside a per-student mutual-exclusion scope. Two
	// concurrent submissions for the same student cannot interleave, so
	// a three-level rollup is applied all-or-nothing.
	InTx(ctx context.Context, studentID string, fn func(tx Txn) error) error
}

// ActivityEvent is one completed activity attempt, kept for stats and
// audit.
type ActivityEvent struct {
	ID        int64     `db:"id"`
	AttemptID string    `db:"attempt_id"`
	StudentID string    `db:"student_id"`
	ModuleID  string    `db:"module_id"`
	Domain    string    `db:"domain"`
	Correct   int       `db:"correct"`
	Total     int       `db:"total"`
	CreatedAt time.Time `db:"created_at"`
}

// EventRepo provides append access to activity events.
type EventRepo interface {
	// AppendActivity records a completed activity attempt.
	AppendActivity(ctx context.Context, ev ActivityEvent) error

	// RecentActivity returns the most recent attempts for a student,
	// newest first.
	RecentActivity(ctx context.Context, studentID string, limit int) ([]ActivityEvent, error)
}
