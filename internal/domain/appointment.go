package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the booking state of an appointment. The set is
// closed but there is no enforced transition graph: any status may follow
// any other.
type AppointmentStatus string

// Possible appointment status values.
const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// Common validation errors for Appointment.
var (
	ErrEmptyAppointmentID        = errors.New("appointment ID cannot be empty")
	ErrMissingAppointmentTimes   = errors.New("both starts_at and ends_at are required")
	ErrEndsBeforeStarts          = errors.New("end time cannot be earlier than start time")
	ErrEmptyAppointmentStatus    = errors.New("status is required")
	ErrInvalidAppointmentStatus  = errors.New("status must be one of the following: scheduled, completed, canceled")
	ErrConfirmationNumberFormat  = errors.New("confirmation number must be 9 digits long")
	ErrEmptyAppointmentUserID    = errors.New("appointment user ID cannot be empty")
	ErrEmptyAppointmentServiceID = errors.New("appointment service ID cannot be empty")
	ErrNotesTooLong              = errors.New("notes must be no greater than 200 characters long")
)

const maxNotesLen = 200

// Confirmation numbers are exactly 9 digits.
const (
	minConfirmationNumber = 100_000_000
	maxConfirmationNumber = 999_999_999
)

// Appointment represents a scheduled booking of one Service by one User.
type Appointment struct {
	ID       uuid.UUID         `json:"id"`
	StartsAt time.Time         `json:"starts_at"`
	EndsAt   time.Time         `json:"ends_at"`
	Status   AppointmentStatus `json:"status"`
	// ConfirmationNumber is a unique 9-digit customer-facing tracking code.
	ConfirmationNumber *int64     `json:"confirmation_number,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	UserID             uuid.UUID  `json:"user_id"`
	ServiceID          uuid.UUID  `json:"service_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewAppointment creates a new scheduled Appointment with a generated ID
// and UTC timestamps. Returns a validation error if any field rule fails.
func NewAppointment(userID, serviceID uuid.UUID, startsAt, endsAt time.Time) (*Appointment, error) {
	now := time.Now().UTC()
	appt := &Appointment{
		ID:        uuid.New(),
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Status:    AppointmentStatusScheduled,
		UserID:    userID,
		ServiceID: serviceID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := appt.Validate(); err != nil {
		return nil, err
	}

	return appt, nil
}

// Validate checks the Appointment against create-mode rules.
func (a *Appointment) Validate() error {
	if a.ID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyAppointmentID)
	}
	if a.CreatedAt.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingCreatedAt)
	}
	if a.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingUpdatedAt)
	}
	if err := ValidateAppointmentWindow(a.StartsAt, a.EndsAt); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := ValidateAppointmentStatus(a.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if a.ConfirmationNumber != nil {
		if err := ValidateConfirmationNumber(*a.ConfirmationNumber); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if a.Notes != nil && len(*a.Notes) > maxNotesLen {
		return fmt.Errorf("%w: %w", ErrValidation, ErrNotesTooLong)
	}
	if a.UserID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyAppointmentUserID)
	}
	if a.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyAppointmentServiceID)
	}
	return nil
}

// AppointmentUpdate carries the mutable Appointment fields for a partial
// update. Nil fields are left untouched. Foreign keys are fixed at
// creation; rebooking a different service is a new appointment.
type AppointmentUpdate struct {
	ID                 *uuid.UUID         `json:"id,omitempty"`
	StartsAt           *time.Time         `json:"starts_at,omitempty"`
	EndsAt             *time.Time         `json:"ends_at,omitempty"`
	Status             *AppointmentStatus `json:"status,omitempty"`
	ConfirmationNumber *int64             `json:"confirmation_number,omitempty"`
	Notes              *string            `json:"notes,omitempty"`
}

// Validate checks the update payload against update-mode rules. The
// starts/ends ordering is re-checked against the merged entity in the
// service layer, since either side may be absent here.
func (p *AppointmentUpdate) Validate() error {
	if p.ID != nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrIDImmutable)
	}
	if p.Status != nil {
		if err := ValidateAppointmentStatus(*p.Status); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.ConfirmationNumber != nil {
		if err := ValidateConfirmationNumber(*p.ConfirmationNumber); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.Notes != nil && len(*p.Notes) > maxNotesLen {
		return fmt.Errorf("%w: %w", ErrValidation, ErrNotesTooLong)
	}
	return nil
}

// Apply overwrites the appointment's fields with the non-nil fields of
// the update.
func (p *AppointmentUpdate) Apply(a *Appointment) {
	if p.StartsAt != nil {
		a.StartsAt = *p.StartsAt
	}
	if p.EndsAt != nil {
		a.EndsAt = *p.EndsAt
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.ConfirmationNumber != nil {
		a.ConfirmationNumber = p.ConfirmationNumber
	}
	if p.Notes != nil {
		a.Notes = p.Notes
	}
}

// ValidateAppointmentWindow checks that both times are present and that
// the appointment does not end before it starts. Equal start and end is
// accepted.
func ValidateAppointmentWindow(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return ErrMissingAppointmentTimes
	}
	if startsAt.After(endsAt) {
		return ErrEndsBeforeStarts
	}
	return nil
}

// ValidateAppointmentStatus checks the status against the closed set.
func ValidateAppointmentStatus(status AppointmentStatus) error {
	switch status {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCanceled:
		return nil
	case "":
		return ErrEmptyAppointmentStatus
	default:
		return ErrInvalidAppointmentStatus
	}
}

// ValidateConfirmationNumber checks that the code is exactly 9 digits.
func ValidateConfirmationNumber(n int64) error {
	if n < minConfirmationNumber || n > maxConfirmationNumber {
		return ErrConfirmationNumberFormat
	}
	return nil
}
