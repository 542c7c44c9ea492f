package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dmoreno/tasktrack-api/internal/service"
)

// MapFailureToStatusCode translates a Result failure classification into an
// HTTP status code. Not-found gets its own code; everything else, including
// infrastructure failures, surfaces as a bad request with a generic message,
// so no internal detail leaks through the status line either.
func MapFailureToStatusCode(code service.FailureCode) int {
	switch code {
	case service.FailureNotFound:
		return http.StatusNotFound
	case service.FailureInvalidInput, service.FailureInternal:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// validationMessage turns a validator error into the user-facing message for
// the first violated rule, mirroring the single-error-at-a-time reporting of
// the service layer.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Title":
		if fe.Tag() == "required" {
			return service.MsgTitleRequired
		}
		return service.MsgTitleLength
	case "Description":
		return "description cannot exceed 1000 characters"
	case "Status":
		return service.MsgStatusRequired
	case "Priority":
		return service.MsgPriorityRequired
	case "ID":
		return service.MsgInvalidTaskID
	case "DueDate":
		if fe.Tag() == "futuredate" {
			return "due date cannot be before today"
		}
		return "due date is not a valid date"
	default:
		return "invalid request"
	}
}
