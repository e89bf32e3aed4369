package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/salonworks/booking-api/internal/domain"
)

// Common request/response structures. Timestamps arrive as RFC 3339
// strings; the decoder rejects zoneless values, so every submitted time
// carries an explicit UTC offset.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest defines the payload for direct user creation. It
// mirrors registration but returns the user record instead of tokens.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication
// endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT used for API authorization.
	AccessToken string `json:"token"`

	// RefreshToken is the JWT used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is when the access token expires, RFC 3339.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateServiceRequest defines the payload for adding a catalog offering.
type CreateServiceRequest struct {
	Name            string  `json:"name"             validate:"required"`
	Description     string  `json:"description"      validate:"required"`
	DurationMinutes int     `json:"duration_minutes" validate:"required"`
	Price           float64 `json:"price"            validate:"required"`
}

// CreateAppointmentRequest defines the payload for booking an
// appointment.
type CreateAppointmentRequest struct {
	UserID             uuid.UUID `json:"user_id"    validate:"required"`
	ServiceID          uuid.UUID `json:"service_id" validate:"required"`
	StartsAt           time.Time `json:"starts_at"  validate:"required"`
	EndsAt             time.Time `json:"ends_at"    validate:"required"`
	Notes              *string   `json:"notes,omitempty"`
	ConfirmationNumber *int64    `json:"confirmation_number,omitempty"`
}

// CreateNotificationRequest defines the payload for scheduling a
// notification.
type CreateNotificationRequest struct {
	UserID          uuid.UUID                   `json:"user_id"           validate:"required"`
	AppointmentID   *uuid.UUID                  `json:"appointment_id,omitempty"`
	Type            domain.NotificationType     `json:"type"              validate:"required"`
	Priority        domain.NotificationPriority `json:"priority"          validate:"required"`
	Subject         *string                     `json:"subject,omitempty"`
	Message         string                      `json:"message"           validate:"required"`
	ScheduledSendAt time.Time                   `json:"scheduled_send_at" validate:"required"`
	ChannelInfo     json.RawMessage             `json:"channel_info,omitempty"`
}
