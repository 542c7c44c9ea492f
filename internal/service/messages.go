package service

// User-facing messages, centralised for easy maintenance. Result envelopes
// carry these strings verbatim; raw store error text never reaches them.
const (
	// Validation
	MsgTitleRequired      = "title is required"
	MsgTitleLength        = "title must be between 3 and 200 characters"
	MsgDescriptionTooLong = "description cannot exceed 2000 characters"
	MsgStatusRequired     = "status is required"
	MsgStatusInvalid      = "status is not recognized"
	MsgPriorityRequired   = "priority is required"
	MsgPriorityInvalid    = "priority is not recognized"
	MsgInvalidTaskID      = "the task ID is not valid"

	// Task operations
	MsgTaskNotFound  = "the task was not found"
	MsgTaskLoadError = "error loading tasks"
	MsgCreateError   = "error creating the task"
	MsgUpdateError   = "error updating the task"
	MsgDeleteError   = "error deleting the task"

	// General
	MsgUnexpectedError = "an unexpected error occurred, please try again"

	// Success
	MsgTaskCreated = "task created successfully"
	MsgTaskUpdated = "task updated successfully"
	MsgTaskDeleted = "task deleted successfully"
)
