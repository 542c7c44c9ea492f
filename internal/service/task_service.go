package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmoreno/tasktrack-api/internal/domain"
	"github.com/dmoreno/tasktrack-api/internal/platform/logger"
	"github.com/dmoreno/tasktrack-api/internal/redact"
	"github.com/dmoreno/tasktrack-api/internal/store"
)

// TaskList is the view returned by List: one page of tasks plus the filter
// that produced it and the aggregate counts over the full live set.
type TaskList struct {
	Tasks      []domain.Task
	Filter     domain.TaskFilter
	TotalCount int
	TotalPages int

	PendingCount    int
	InProgressCount int
	CompletedCount  int
	OverdueCount    int
}

// TaskEdit is the edit-specific shape: the mutable fields with the stored
// enumeration text already decoded, plus the read-only creation timestamp.
type TaskEdit struct {
	ID          int64
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
	DueDate     *time.Time
	CreatedAt   time.Time
}

// TaskService provides the task use cases. Every method runs to completion
// within the calling request and returns a Result; infrastructure failures
// are logged internally and surfaced as generic messages.
type TaskService interface {
	// List returns the filtered, sorted, paginated task page together with
	// status counts computed over the entire live set.
	List(ctx context.Context, filter domain.TaskFilter) Result[TaskList]

	// GetByID returns a single live task.
	GetByID(ctx context.Context, id int64) Result[domain.Task]

	// Create validates the input, stamps both timestamps, and persists a new
	// task with store-assigned ID.
	Create(ctx context.Context, in TaskInput) Result[domain.Task]

	// Update validates the input against the path ID, overwrites the mutable
	// fields of the existing task, and returns the re-fetched row so the view
	// reflects exactly what was persisted.
	Update(ctx context.Context, pathID int64, in TaskUpdate) Result[domain.Task]

	// Delete soft-deletes a live task.
	Delete(ctx context.Context, id int64) VoidResult

	// GetForEdit returns the edit-specific shape of a live task.
	GetForEdit(ctx context.Context, id int64) Result[TaskEdit]
}

// taskService implements the TaskService interface.
type taskService struct {
	tasks  store.TaskStore
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a new TaskService.
// It returns an error if the task store is nil.
func NewTaskService(tasks store.TaskStore, log *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, errors.New("task store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskService{
		tasks:  tasks,
		logger: log.With(slog.String("component", "task_service")),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// List implements TaskService.List.
func (s *taskService) List(ctx context.Context, filter domain.TaskFilter) Result[TaskList] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter.Normalize()

	all, err := s.tasks.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", redact.Error(err)))
		return Failure[TaskList](FailureInternal, MsgTaskLoadError)
	}

	page, total, totalPages := applyTaskFilter(all, filter)

	// Counts are fetched separately and cover the full live set, so the
	// badges stay stable while the user filters.
	counts, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		log.Error("failed to count tasks by status", slog.String("error", redact.Error(err)))
		return Failure[TaskList](FailureInternal, MsgTaskLoadError)
	}

	return Success(TaskList{
		Tasks:           page,
		Filter:          filter,
		TotalCount:      total,
		TotalPages:      totalPages,
		PendingCount:    counts.Pending,
		InProgressCount: counts.InProgress,
		CompletedCount:  counts.Completed,
		OverdueCount:    counts.Overdue,
	}, "")
}

// GetByID implements TaskService.GetByID.
func (s *taskService) GetByID(ctx context.Context, id int64) Result[domain.Task] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id <= 0 {
		return Failure[domain.Task](FailureInvalidInput, MsgInvalidTaskID)
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Warn("task not found", slog.Int64("task_id", id))
			return Failure[domain.Task](FailureNotFound, MsgTaskNotFound)
		}
		log.Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return Failure[domain.Task](FailureInternal, MsgUnexpectedError)
	}

	return Success(*task, "")
}

// Create implements TaskService.Create.
func (s *taskService) Create(ctx context.Context, in TaskInput) Result[domain.Task] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	status, priority, msg := validateTaskInput(in)
	if msg != "" {
		return Failure[domain.Task](FailureInvalidInput, msg)
	}

	now := s.now()
	task := &domain.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		log.Error("failed to create task", slog.String("error", redact.Error(err)))
		return Failure[domain.Task](FailureInternal, MsgCreateError)
	}

	log.Info("task created", slog.Int64("task_id", created.ID))
	return Success(*created, MsgTaskCreated)
}

// Update implements TaskService.Update.
func (s *taskService) Update(ctx context.Context, pathID int64, in TaskUpdate) Result[domain.Task] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if pathID <= 0 || in.ID != pathID {
		return Failure[domain.Task](FailureInvalidInput, MsgInvalidTaskID)
	}

	status, priority, msg := validateTaskInput(in.TaskInput)
	if msg != "" {
		return Failure[domain.Task](FailureInvalidInput, msg)
	}

	existing, err := s.tasks.GetByID(ctx, pathID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return Failure[domain.Task](FailureNotFound, MsgTaskNotFound)
		}
		log.Error("failed to load task for update",
			slog.Int64("task_id", pathID),
			slog.String("error", redact.Error(err)))
		return Failure[domain.Task](FailureInternal, MsgUpdateError)
	}

	// Only the mutable fields change; ID and CreatedAt never do.
	existing.Title = strings.TrimSpace(in.Title)
	existing.Description = strings.TrimSpace(in.Description)
	existing.Status = status
	existing.Priority = priority
	existing.DueDate = in.DueDate
	existing.UpdatedAt = s.now()

	updated, err := s.tasks.Update(ctx, existing)
	if err != nil {
		log.Error("failed to update task",
			slog.Int64("task_id", pathID),
			slog.String("error", redact.Error(err)))
		return Failure[domain.Task](FailureInternal, MsgUpdateError)
	}
	if !updated {
		return Failure[domain.Task](FailureInternal, MsgUpdateError)
	}

	log.Info("task updated", slog.Int64("task_id", pathID))

	// Re-fetch so the returned view reflects exactly what was persisted.
	persisted, err := s.tasks.GetByID(ctx, pathID)
	if err != nil {
		log.Error("failed to re-fetch task after update",
			slog.Int64("task_id", pathID),
			slog.String("error", redact.Error(err)))
		return Failure[domain.Task](FailureInternal, MsgUpdateError)
	}

	return Success(*persisted, MsgTaskUpdated)
}

// Delete implements TaskService.Delete.
func (s *taskService) Delete(ctx context.Context, id int64) VoidResult {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id <= 0 {
		return VoidFailure(FailureInvalidInput, MsgInvalidTaskID)
	}

	exists, err := s.tasks.Exists(ctx, id)
	if err != nil {
		log.Error("failed to check task existence",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return VoidFailure(FailureInternal, MsgDeleteError)
	}
	if !exists {
		return VoidFailure(FailureNotFound, MsgTaskNotFound)
	}

	deleted, err := s.tasks.SoftDelete(ctx, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return VoidFailure(FailureInternal, MsgDeleteError)
	}
	if !deleted {
		return VoidFailure(FailureInternal, MsgDeleteError)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return VoidSuccess(MsgTaskDeleted)
}

// GetForEdit implements TaskService.GetForEdit.
func (s *taskService) GetForEdit(ctx context.Context, id int64) Result[TaskEdit] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id <= 0 {
		return Failure[TaskEdit](FailureInvalidInput, MsgInvalidTaskID)
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return Failure[TaskEdit](FailureNotFound, MsgTaskNotFound)
		}
		log.Error("failed to get task for edit",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return Failure[TaskEdit](FailureInternal, MsgUnexpectedError)
	}

	return Success(TaskEdit{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
	}, "")
}
