package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// StatusError is an error that knows which HTTP status a failure maps to.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Validation reports a request the caller can fix (400).
func Validation(format string, args ...interface{}) *StatusError {
	return &StatusError{Code: 400, Message: fmt.Sprintf(format, args...)}
}

// Storage reports a filesystem or database failure (500).
func Storage(message string) *StatusError {
	return &StatusError{Code: 500, Message: message}
}

// CapacityError is returned when a project already holds the maximum
// number of images.
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Maximum %d images allowed per project", e.Limit)
}

// IsCapacity reports whether err is (or wraps) a CapacityError.
func IsCapacity(err error) bool {
	var ce *CapacityError
	return errors.As(err, &ce)
}

// CodeOf extracts the HTTP status carried by err, defaulting to 500.
func CodeOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	var ce *CapacityError
	if errors.As(err, &ce) {
		return 400
	}
	return 500
}
