package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a task ID is zero or negative.
	ErrInvalidID = errors.New("invalid task ID")

	// ErrInvalidStatus is returned when a raw status value does not decode
	// to a recognized Status member.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidPriority is returned when a raw priority value does not
	// decode to a recognized Priority member.
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrTitleRequired is returned when a task title is blank after trimming.
	ErrTitleRequired = errors.New("title cannot be empty")

	// ErrTitleLength is returned when a task title is outside the 3-200
	// character range.
	ErrTitleLength = errors.New("title must be between 3 and 200 characters")

	// ErrDescriptionTooLong is returned when a task description exceeds the
	// persisted column limit of 2000 characters.
	ErrDescriptionTooLong = errors.New("description cannot exceed 2000 characters")
)
