package store

import (
	"context"
)

// eventRepo is the SQLite-backed EventRepo.
type eventRepo struct {
	store *Store
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{store: s}
}

func (r *eventRepo) AppendActivity(ctx context.Context, ev ActivityEvent) error {
	_, err := r.store.db.NamedExecContext(ctx,
		`INSERT INTO activity_events
			(attempt_id, student_id, module_id, domain, correct, total, created_at)
		 VALUES (:attempt_id, :student_id, :module_id, :domain, :correct, :total, :created_at)`,
		ev)
	if err != nil {
		return &StorageError{Op: "append activity event", Err: err}
	}
	return nil
}

func (r *eventRepo) RecentActivity(ctx context.Context, studentID string, limit int) ([]ActivityEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	var events []ActivityEvent
	err := r.store.db.SelectContext(ctx, &events,
		`SELECT * FROM activity_events
		 WHERE student_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		studentID, limit)
	if err != nil {
		return nil, &StorageError{Op: "recent activity", Err: err}
	}
	return events, nil
}
