package errors

import (
	"net/http"

	"github.com/crave-catering/cc-order/pkg/status"
)

// ApplicationError carries a stable status code alongside the HTTP status
// so handlers can render it without inspecting the message.
type ApplicationError struct {
	HTTPStatusCode int
	Status         string
	Message        string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func New(httpStatusCode int, status string, message string) error {
	return &ApplicationError{
		HTTPStatusCode: httpStatusCode,
		Status:         status,
		Message:        message,
	}
}

// Destruct resolves any error into an ApplicationError, defaulting unknown
// errors to an internal server error so internals never leak to callers.
func Destruct(err error) *ApplicationError {
	if ae, ok := err.(*ApplicationError); ok {
		return ae
	}

	return &ApplicationError{
		HTTPStatusCode: http.StatusInternalServerError,
		Status:         status.INTERNAL_SERVER_ERROR,
		Message:        "an unexpected error occurred",
	}
}
