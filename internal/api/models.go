package api

import (
	"time"

	"github.com/dmoreno/tasktrack-api/internal/domain"
	"github.com/dmoreno/tasktrack-api/internal/service"
)

// dateLayout is the wire format for due dates; they carry no time component.
const dateLayout = "2006-01-02"

// CreateTaskRequest defines the payload for creating a task. The description
// limit advertised here (1000) is deliberately tighter than the service's
// hard limit of 2000, matching what the form UI tells users. The due date
// must not be in the past on creation; edits are unconstrained.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Status      string `json:"status"      validate:"required"`
	Priority    string `json:"priority"    validate:"required"`
	DueDate     string `json:"due_date"    validate:"omitempty,datetime=2006-01-02,futuredate"`
}

// UpdateTaskRequest defines the payload for updating a task. The body ID must
// match the path ID.
type UpdateTaskRequest struct {
	ID          int64  `json:"id"          validate:"required"`
	Title       string `json:"title"       validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Status      string `json:"status"      validate:"required"`
	Priority    string `json:"priority"    validate:"required"`
	DueDate     string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

// TaskResponse represents the response data for a single task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"due_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskEditResponse represents the edit-specific shape of a task.
type TaskEditResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"due_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskListResponse represents one page of tasks plus the aggregate counts
// computed over the full live set.
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	TotalCount int            `json:"total_count"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`

	PendingCount    int `json:"pending_count"`
	InProgressCount int `json:"in_progress_count"`
	CompletedCount  int `json:"completed_count"`
	OverdueCount    int `json:"overdue_count"`
}

func taskToResponse(t domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format(dateLayout)
	}
	return resp
}

func taskEditToResponse(t service.TaskEdit) TaskEditResponse {
	resp := TaskEditResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format(dateLayout)
	}
	return resp
}

func taskListToResponse(l service.TaskList) TaskListResponse {
	tasks := make([]TaskResponse, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		tasks = append(tasks, taskToResponse(t))
	}
	return TaskListResponse{
		Tasks:           tasks,
		TotalCount:      l.TotalCount,
		TotalPages:      l.TotalPages,
		Page:            l.Filter.Page,
		PageSize:        l.Filter.PageSize,
		PendingCount:    l.PendingCount,
		InProgressCount: l.InProgressCount,
		CompletedCount:  l.CompletedCount,
		OverdueCount:    l.OverdueCount,
	}
}
