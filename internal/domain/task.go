package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Status represents the workflow state of a task. It is persisted as text,
// so every value read back from storage must pass through ParseStatus.
type Status string

// Recognized status members.
const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// ParseStatus decodes a raw status value into a Status member.
// Returns an error wrapping ErrInvalidStatus if the value is not recognized,
// so malformed stored values surface as a controlled decode failure.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Priority represents the urgency level of a task. Like Status it is
// persisted as text and decoded with ParsePriority.
type Priority string

// Recognized priority members.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority decodes a raw priority value into a Priority member.
// Returns an error wrapping ErrInvalidPriority if the value is not recognized.
func ParsePriority(raw string) (Priority, error) {
	switch Priority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

// Task is the sole entity of the system. The soft-delete marker lives only in
// the storage layer; a Task value always represents a live row.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Validate checks the task's field constraints.
// It reports the first violated rule only, mirroring the
// single-error-at-a-time contract of the service layer.
func (t *Task) Validate() error {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return ErrTitleRequired
	}
	if n := utf8.RuneCountInString(title); n < 3 || n > 200 {
		return ErrTitleLength
	}
	if utf8.RuneCountInString(t.Description) > 2000 {
		return ErrDescriptionTooLong
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	return nil
}

// IsOverdue reports whether the task's due date falls strictly before the
// given day and the task is still actionable. Comparison is at day
// granularity; the time component of both arguments is ignored.
func (t *Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == StatusCompleted || t.Status == StatusCancelled {
		return false
	}
	due := t.DueDate.UTC()
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return dueDay.Before(day)
}
