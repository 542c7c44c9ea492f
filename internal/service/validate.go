package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmoreno/tasktrack-api/internal/domain"
)

// TaskInput carries the raw create/edit fields as they arrive from the
// boundary. Status and priority are undecoded strings; turning them into
// enumeration members is part of validation.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
}

// TaskUpdate is a TaskInput plus the body-supplied ID, which must match the
// path ID of the request.
type TaskUpdate struct {
	ID int64
	TaskInput
}

// validateTaskInput applies the field rules shared by create and edit and
// decodes the enumeration fields. It reports the first violated rule only.
// On success the returned message is empty.
func validateTaskInput(in TaskInput) (domain.Status, domain.Priority, string) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", "", MsgTitleRequired
	}
	if n := utf8.RuneCountInString(title); n < 3 || n > 200 {
		return "", "", MsgTitleLength
	}

	// The UI advertises 1000 characters; the persisted column tolerates
	// 2000. The service enforces only the hard limit.
	if utf8.RuneCountInString(in.Description) > 2000 {
		return "", "", MsgDescriptionTooLong
	}

	if strings.TrimSpace(in.Status) == "" {
		return "", "", MsgStatusRequired
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return "", "", MsgStatusInvalid
	}

	if strings.TrimSpace(in.Priority) == "" {
		return "", "", MsgPriorityRequired
	}
	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		return "", "", MsgPriorityInvalid
	}

	return status, priority, ""
}
