package domain

import "strings"

// DefaultPageSize is applied when a filter arrives with a non-positive page
// size. Page numbers are 1-based.
const DefaultPageSize = 5

// TaskFilter is the transient query descriptor sent with each list request.
// It is never persisted. Zero-value pointer fields mean "no filter".
type TaskFilter struct {
	Status         *Status
	Priority       *Priority
	SearchTerm     string
	SortBy         string
	SortDescending bool
	Page           int
	PageSize       int
}

// DefaultTaskFilter returns the filter applied when the caller supplies none:
// newest first, first page of five.
func DefaultTaskFilter() TaskFilter {
	return TaskFilter{
		SortBy:         "CreatedAt",
		SortDescending: true,
		Page:           1,
		PageSize:       DefaultPageSize,
	}
}

// Normalize clamps pagination fields to sane values. An out-of-range page
// size is a configuration mistake, not a runtime fault, so it defaults
// rather than erroring.
func (f *TaskFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
}

// HasActiveFilters reports whether any row-narrowing criterion is set.
func (f *TaskFilter) HasActiveFilters() bool {
	return f.Status != nil || f.Priority != nil || strings.TrimSpace(f.SearchTerm) != ""
}
