package service

// FailureCode classifies a failed Result so the transport layer can pick a
// status code without parsing the human-readable message.
type FailureCode int

const (
	// FailureNone is the code of a successful result.
	FailureNone FailureCode = iota

	// FailureInvalidInput marks validation and invalid-identifier failures.
	FailureInvalidInput

	// FailureNotFound marks a missing (or soft-deleted) entity.
	FailureNotFound

	// FailureInternal marks an infrastructure failure. The message is a
	// generic one; the detail lives only in the logs.
	FailureInternal
)

// Result is the uniform success/failure envelope returned by the service
// layer. Exactly one of success-with-value or failure-with-error holds at any
// time.
type Result[T any] struct {
	ok      bool
	value   T
	code    FailureCode
	message string
	errMsg  string
}

// Success creates a successful result carrying value and an optional
// human-readable message (empty string for none).
func Success[T any](value T, message string) Result[T] {
	return Result[T]{ok: true, value: value, message: message}
}

// Failure creates a failed result carrying no value.
func Failure[T any](code FailureCode, errorMessage string) Result[T] {
	return Result[T]{ok: false, code: code, errMsg: errorMessage}
}

// IsSuccess reports whether the operation succeeded.
func (r Result[T]) IsSuccess() bool { return r.ok }

// IsFailure reports whether the operation failed.
func (r Result[T]) IsFailure() bool { return !r.ok }

// Value returns the carried value. Calling Value on a failed result is a
// programming error and panics; check IsSuccess first.
func (r Result[T]) Value() T {
	if !r.ok {
		// ALLOW-PANIC: guards the non-nullable-on-failure contract.
		panic("service: Value called on a failed Result")
	}
	return r.value
}

// Message returns the optional success message, or "".
func (r Result[T]) Message() string { return r.message }

// ErrorMessage returns the failure message, or "" for a success.
func (r Result[T]) ErrorMessage() string { return r.errMsg }

// Code returns the failure classification, FailureNone for a success.
func (r Result[T]) Code() FailureCode { return r.code }

// VoidResult is the envelope for operations that signal only success or
// failure without a payload, such as delete.
type VoidResult struct {
	ok      bool
	code    FailureCode
	message string
	errMsg  string
}

// VoidSuccess creates a successful VoidResult with an optional message.
func VoidSuccess(message string) VoidResult {
	return VoidResult{ok: true, message: message}
}

// VoidFailure creates a failed VoidResult.
func VoidFailure(code FailureCode, errorMessage string) VoidResult {
	return VoidResult{ok: false, code: code, errMsg: errorMessage}
}

// IsSuccess reports whether the operation succeeded.
func (r VoidResult) IsSuccess() bool { return r.ok }

// IsFailure reports whether the operation failed.
func (r VoidResult) IsFailure() bool { return !r.ok }

// Message returns the optional success message, or "".
func (r VoidResult) Message() string { return r.message }

// ErrorMessage returns the failure message, or "" for a success.
func (r VoidResult) ErrorMessage() string { return r.errMsg }

// Code returns the failure classification, FailureNone for a success.
func (r VoidResult) Code() FailureCode { return r.code }
