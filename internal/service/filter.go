package service

import (
	"sort"
	"strings"
	"time"

	"github.com/dmoreno/tasktrack-api/internal/domain"
)

// applyTaskFilter turns the full live row set and a normalized filter into
// the page the caller sees. It returns the page slice, the filtered row
// count, and the total page count.
//
// The pipeline is: status filter, priority filter, free-text search, stable
// sort, pagination. Aggregate status counts are deliberately not computed
// here; they always cover the full set and come from the store.
func applyTaskFilter(tasks []domain.Task, filter domain.TaskFilter) ([]domain.Task, int, int) {
	filtered := filterTasks(tasks, filter)
	sortTasks(filtered, filter.SortBy, filter.SortDescending)

	total := len(filtered)
	totalPages := (total + filter.PageSize - 1) / filter.PageSize

	start := (filter.Page - 1) * filter.PageSize
	if start >= total {
		// An out-of-range page yields an empty page, not an error.
		return []domain.Task{}, total, totalPages
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total, totalPages
}

// filterTasks keeps the rows matching every given criterion. A blank or
// whitespace-only search term means "no filter", not "match nothing".
func filterTasks(tasks []domain.Task, filter domain.TaskFilter) []domain.Task {
	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))

	filtered := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// sortTasks orders tasks in place by the resolved sort field. The sort is
// stable so that repeated identical queries keep equal-keyed rows in the
// same relative order.
func sortTasks(tasks []domain.Task, sortBy string, descending bool) {
	less := lessFunc(sortBy)
	sort.SliceStable(tasks, func(i, j int) bool {
		if descending {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

// lessFunc resolves a sort field name, case-insensitively, to an ordering.
// Unrecognized names fall back to creation time. Status and priority order
// by their stored text, matching what ORDER BY does on the text columns.
func lessFunc(sortBy string) func(a, b domain.Task) bool {
	switch strings.ToLower(sortBy) {
	case "title":
		return func(a, b domain.Task) bool { return a.Title < b.Title }
	case "status":
		return func(a, b domain.Task) bool { return a.Status < b.Status }
	case "priority":
		return func(a, b domain.Task) bool { return a.Priority < b.Priority }
	case "duedate":
		return func(a, b domain.Task) bool { return dueBefore(a.DueDate, b.DueDate) }
	default:
		return func(a, b domain.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

// dueBefore orders due dates with unset dates after every set date, the way
// ascending NULLS LAST would.
func dueBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
