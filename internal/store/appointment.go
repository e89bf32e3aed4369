package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
)

// AppointmentStore defines the interface for appointment persistence.
type AppointmentStore interface {
	// Create saves a new appointment. Returns
	// ErrConfirmationNumberExists on a duplicate confirmation number and
	// ErrInvalidEntity if the referenced user or service does not exist.
	Create(ctx context.Context, appointment *domain.Appointment) error

	// GetByID retrieves an appointment by its unique ID.
	// Returns ErrAppointmentNotFound if the appointment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)

	// GetByConfirmationNumber retrieves every appointment carrying the
	// given confirmation number. More than one result means the unique
	// constraint was bypassed out of band; callers treat that as a data
	// integrity failure.
	GetByConfirmationNumber(ctx context.Context, confirmationNumber int64) ([]*domain.Appointment, error)

	// List retrieves all appointments ordered by start time, newest first.
	List(ctx context.Context) ([]*domain.Appointment, error)

	// ListForUser retrieves a user's appointments ordered by start time.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error)

	// Update persists the complete appointment object.
	// Returns ErrAppointmentNotFound if the appointment does not exist.
	Update(ctx context.Context, appointment *domain.Appointment) error

	// Delete removes an appointment by ID.
	// Returns ErrAppointmentNotFound if the appointment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns an AppointmentStore bound to the given transaction.
	WithTx(tx *sql.Tx) AppointmentStore
}
