package store

import (
	"context"

	"github.com/dmoreno/tasktrack-api/internal/domain"
)

// StatusCounts aggregates live (non-deleted) tasks per status. Overdue is a
// synthetic bucket: due date before today and status neither Completed nor
// Cancelled. It overlaps the other buckets by design.
type StatusCounts struct {
	Pending    int
	InProgress int
	Completed  int
	Cancelled  int
	Overdue    int
}

// TaskStore defines the interface for task data persistence.
//
// Every operation is implicitly scoped to non-deleted rows: a soft-deleted
// task behaves exactly like a missing one. Timestamps are assigned by the
// caller (the service layer), never by the store.
type TaskStore interface {
	// List retrieves all live tasks ordered by creation time, newest first.
	// Filtering, sorting and pagination happen in the service layer.
	List(ctx context.Context) ([]domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist or is soft-deleted.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create inserts a new task and returns it with the store-assigned ID
	// and the persisted column values echoed back.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Update overwrites the mutable fields of an existing live task.
	// Returns true iff a live row with that ID was modified.
	Update(ctx context.Context, task *domain.Task) (bool, error)

	// SoftDelete marks a live task as deleted and bumps its updated_at.
	// Returns true iff a live row with that ID was marked. IDs are never
	// reused afterwards; the row stays in place.
	SoftDelete(ctx context.Context, id int64) (bool, error)

	// Exists reports whether a live task with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// CountByStatus aggregates the full live set per status, including the
	// synthetic Overdue bucket. The counts are independent of any filter.
	CountByStatus(ctx context.Context) (StatusCounts, error)
}
