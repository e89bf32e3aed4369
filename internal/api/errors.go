package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/service"
	"github.com/salonworks/booking-api/internal/service/auth"
	"github.com/salonworks/booking-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so
// handlers never leak internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrReferenced):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Data corruption surfaces as a server error
	case errors.Is(err, service.ErrDataIntegrity):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// ErrInvalidCredentials indicates a login attempt with a wrong username
// or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// for the given error. Validation messages are part of the API contract
// and pass through verbatim; everything else is mapped to a fixed
// phrase.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return validationMessage(err)

	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrServiceNotFound):
		return "Service not found"
	case errors.Is(err, store.ErrAppointmentNotFound):
		return "Appointment not found"
	case errors.Is(err, store.ErrNotificationNotFound):
		return "Notification not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrServiceNameExists):
		return "Service name already exists"
	case errors.Is(err, store.ErrConfirmationNumberExists):
		return "Confirmation number already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	case errors.Is(err, store.ErrReferenced):
		return "Cannot delete: other records still reference this entity"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// validationMessage strips the internal wrapping prefix so clients see
// only the rule that was violated.
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, domain.ErrValidation.Error()+": "); ok {
		return rest
	}
	return msg
}
