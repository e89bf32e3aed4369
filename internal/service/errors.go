package service

import (
	"errors"
	"fmt"
)

// Common service errors. Callers check these with errors.Is(); the API
// layer maps them to HTTP status codes.
var (
	// ErrDataIntegrity indicates stored data violates an invariant that
	// should be impossible under normal operation, e.g. two appointments
	// sharing one confirmation number.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrNoSender indicates no delivery channel is configured for a
	// notification's type.
	ErrNoSender = errors.New("no sender configured for notification type")
)

// Error wraps an unexpected failure from a service operation with enough
// context to identify where it happened.
type Error struct {
	// Operation is the operation that failed, e.g. "create_appointment".
	Operation string
	// Message is a human-readable description of the failure.
	Message string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
